// Package router sets up all HTTP routes and middleware chains for the
// Inkpress blog. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/handlers"
	"inkpress/internal/identity"
	"inkpress/internal/middleware"
	"inkpress/internal/session"
	"inkpress/web"
)

// Subscribe endpoints allow 5 attempts per IP per minute.
const (
	subscribeLimit  = 5
	subscribeWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. secure controls the Secure flag on the CSRF
// cookie.
func New(sessionStore *session.Store, gate *identity.Gate, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, secure bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", handlers.Health)

	// Embedded static assets. The FS root contains static/, so the URL
	// path maps straight onto it.
	r.Handle("/static/*", http.FileServerFS(web.StaticFS))

	csrf := middleware.NewCSRF(secure)

	// Admin routes — require authentication and CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrf)

		// Auth pages — accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated, 2FA-verified, admin-only content management.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.RequireAdmin(gate))

			r.Get("/", admin.Dashboard)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/new", admin.NewPostForm)
				r.Post("/", admin.CreatePost)
				r.Get("/{id}/edit", admin.EditPostForm)
				r.Post("/{id}", admin.UpdatePost)
				r.Post("/{id}/delete", admin.DeletePost)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", admin.CreateCategory)
				r.Post("/{id}/delete", admin.DeleteCategory)
			})
		})
	})

	// Subscription endpoints — rate-limited per IP, deliberately outside
	// CSRF: public pages are served from the shared page cache, so any
	// embedded token would belong to whichever visitor warmed the cache.
	// The operations are idempotent and throttled instead.
	limiter := middleware.NewRateLimiter(subscribeLimit, subscribeWindow)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/posts/{id}/subscribe", public.Subscribe)
		r.Post("/posts/{id}/unsubscribe", public.Unsubscribe)
	})

	// Public routes. The CSRF middleware only issues tokens on GET; the
	// signed-in admin needs one for the management forms embedded in
	// public pages (those pages bypass the cache for the admin).
	r.Group(func(r chi.Router) {
		r.Use(csrf)
		r.Get("/", public.Home)
		r.Get("/posts/{id}", public.PostDetail)
		r.Get("/categories", public.Categories)
		r.Get("/category/{name}", public.CategoryPage)
	})

	return r
}

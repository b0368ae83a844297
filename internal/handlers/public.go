// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the public blog and
// the admin interface.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/cache"
	"inkpress/internal/middleware"
	"inkpress/internal/render"
	"inkpress/internal/store"
)

// homePostLimit caps how many posts the home page lists.
const homePostLimit = 10

// Public groups the visitor-facing HTTP handlers.
type Public struct {
	renderer *render.Renderer
	posts    *store.PostStore
	cats     *store.CategoryStore
	subs     *store.SubscriptionStore
	pages    *cache.PageCache // nil disables page caching
}

// NewPublic creates a new Public handler group. pages may be nil when
// Valkey is unavailable; every page is then rendered on demand.
func NewPublic(renderer *render.Renderer, posts *store.PostStore, cats *store.CategoryStore, subs *store.SubscriptionStore, pages *cache.PageCache) *Public {
	return &Public{
		renderer: renderer,
		posts:    posts,
		cats:     cats,
		subs:     subs,
		pages:    pages,
	}
}

// cacheable reports whether the response for this request may be served
// from and stored in the page cache. Signed-in requests bypass the cache
// because their pages carry admin controls and CSRF tokens.
func (p *Public) cacheable(r *http.Request) bool {
	return p.pages != nil && middleware.PrincipalFromCtx(r.Context()) == nil && len(r.URL.Query()) == 0
}

// servePage renders a page, consulting the page cache for anonymous
// requests.
func (p *Public) servePage(w http.ResponseWriter, r *http.Request, cacheKey, tmpl string, data *render.PageData) {
	cacheable := p.cacheable(r)

	if cacheable {
		if html, ok := p.pages.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(html)
			return
		}
	}

	html, err := p.renderer.Bytes(r, tmpl, data)
	if err != nil {
		slog.Error("render failed", "template", tmpl, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if cacheable {
		p.pages.Set(r.Context(), cacheKey, html)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// noticeFlashes maps the notice query parameter set by POST redirects to
// one-time messages.
func noticeFlashes(r *http.Request) []render.Flash {
	switch r.URL.Query().Get("notice") {
	case "subscribed":
		return []render.Flash{{Type: "success", Message: "You are subscribed. We will email you when this post is updated."}}
	case "unsubscribed":
		return []render.Flash{{Type: "success", Message: "You have been unsubscribed."}}
	case "not-subscribed":
		return []render.Flash{{Type: "warning", Message: "That email is not subscribed to this post."}}
	case "invalid-email":
		return []render.Flash{{Type: "error", Message: "Please enter a valid email address."}}
	case "invalid-category":
		return []render.Flash{{Type: "error", Message: "That category name cannot be used."}}
	case "has-posts":
		return []render.Flash{{Type: "error", Message: "A category with posts cannot be deleted."}}
	}
	return nil
}

// Home renders the latest posts.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	posts := p.posts.List(r.Context(), store.ListOptions{Limit: homePostLimit})

	p.servePage(w, r, cache.HomeKey(), "home", &render.PageData{
		Title:   "Home",
		Section: "home",
		Data:    map[string]any{"Posts": posts},
	})
}

// PostDetail renders a single post with its subscribe form.
func (p *Public) PostDetail(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")

	post := p.posts.Get(r.Context(), key)
	if post == nil {
		http.NotFound(w, r)
		return
	}

	p.servePage(w, r, cache.PostKey(key), "post", &render.PageData{
		Title:   post.Title,
		Section: "home",
		Flashes: noticeFlashes(r),
		Data:    map[string]any{"Post": post},
	})
}

// Categories renders all categories with live post counts.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	cats := p.cats.List(r.Context())
	for i := range cats {
		cats[i].PostCount = p.posts.CountByCategory(r.Context(), cats[i].Name)
	}

	p.servePage(w, r, cache.CategoriesKey(), "categories", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Flashes: noticeFlashes(r),
		Data:    map[string]any{"Categories": cats},
	})
}

// CategoryPage renders the posts of one category.
func (p *Public) CategoryPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	posts := p.posts.List(r.Context(), store.ListOptions{Category: name})

	p.servePage(w, r, cache.CategoryKey(name), "category", &render.PageData{
		Title:   name,
		Section: "categories",
		Data: map[string]any{
			"CategoryName": name,
			"Posts":        posts,
		},
	})
}

// Subscribe registers an email for update notifications on a post.
// Idempotent: re-subscribing the same email is a silent success.
func (p *Public) Subscribe(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")
	email := r.FormValue("email")

	if err := p.subs.Subscribe(r.Context(), key, email); err != nil {
		if errors.Is(err, store.ErrInvalidEmail) {
			http.Redirect(w, r, "/posts/"+key+"?notice=invalid-email", http.StatusSeeOther)
			return
		}
		slog.Error("subscribe failed", "post", key, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/posts/"+key+"?notice=subscribed", http.StatusSeeOther)
}

// Unsubscribe removes a subscription for the exact (post, email) pair.
func (p *Public) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")
	email := r.FormValue("email")

	if err := p.subs.Unsubscribe(r.Context(), key, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, "/posts/"+key+"?notice=not-subscribed", http.StatusSeeOther)
			return
		}
		slog.Error("unsubscribe failed", "post", key, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/posts/"+key+"?notice=unsubscribed", http.StatusSeeOther)
}

// Health reports liveness for load balancers.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

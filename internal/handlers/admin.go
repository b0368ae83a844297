// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/cache"
	"inkpress/internal/markdown"
	"inkpress/internal/middleware"
	"inkpress/internal/notify"
	"inkpress/internal/render"
	"inkpress/internal/store"
)

// Admin groups the content-management HTTP handlers. Every mutation
// reads the principal from the request context and passes it to the
// stores, which enforce the admin check again.
type Admin struct {
	renderer *render.Renderer
	posts    *store.PostStore
	cats     *store.CategoryStore
	pages    *cache.PageCache // nil disables cache invalidation
	notifier *notify.Notifier
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(renderer *render.Renderer, posts *store.PostStore, cats *store.CategoryStore, pages *cache.PageCache, notifier *notify.Notifier) *Admin {
	return &Admin{
		renderer: renderer,
		posts:    posts,
		cats:     cats,
		pages:    pages,
		notifier: notifier,
	}
}

// invalidatePages clears the whole page cache. Any mutation can change
// listings and category counts, so per-page invalidation is not worth
// the bookkeeping.
func (a *Admin) invalidatePages(ctx context.Context) {
	if a.pages != nil {
		a.pages.InvalidateAll(ctx)
	}
}

// Dashboard lists every post for management.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	posts := a.posts.List(r.Context(), store.ListOptions{})

	a.renderer.Page(w, r, "admin_dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "admin",
		Data:    map[string]any{"Posts": posts},
	})
}

// NewPostForm renders the empty post editor.
func (a *Admin) NewPostForm(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "New post",
		Section: "admin",
		Data: map[string]any{
			"Action":     "/admin/posts",
			"Categories": a.cats.List(r.Context()),
		},
	})
}

// CreatePost validates the form, converts the Markdown body, and stores
// the new post.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	draft, errMsg := a.draftFromForm(r)
	if errMsg != "" {
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "New post",
			Section: "admin",
			Flashes: []render.Flash{{Type: "error", Message: errMsg}},
			Data: map[string]any{
				"Action":     "/admin/posts",
				"Categories": a.cats.List(r.Context()),
			},
		})
		return
	}

	post, err := a.posts.Create(r.Context(), middleware.PrincipalFromCtx(r.Context()), draft)
	if err != nil {
		a.writeError(w, "create post", err)
		return
	}

	a.invalidatePages(r.Context())
	http.Redirect(w, r, "/posts/"+post.Key(), http.StatusSeeOther)
}

// EditPostForm renders the editor preloaded with an existing post.
func (a *Admin) EditPostForm(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")

	post := a.posts.Get(r.Context(), key)
	if post == nil {
		http.NotFound(w, r)
		return
	}

	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "Edit post",
		Section: "admin",
		Data: map[string]any{
			"Action":     "/admin/posts/" + key,
			"Post":       post,
			"Categories": a.cats.List(r.Context()),
		},
	})
}

// UpdatePost stores the edited post and fans out subscriber
// notifications in the background. A failed notification never blocks
// or rolls back the update.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")

	draft, errMsg := a.draftFromForm(r)
	if errMsg != "" {
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "Edit post",
			Section: "admin",
			Flashes: []render.Flash{{Type: "error", Message: errMsg}},
			Data: map[string]any{
				"Action":     "/admin/posts/" + key,
				"Post":       a.posts.Get(r.Context(), key),
				"Categories": a.cats.List(r.Context()),
			},
		})
		return
	}

	post, err := a.posts.Update(r.Context(), middleware.PrincipalFromCtx(r.Context()), key, draft)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		a.writeError(w, "update post", err)
		return
	}

	// Detached context: the fan-out must survive the request ending.
	go a.notifier.NotifySubscribers(context.WithoutCancel(r.Context()), post.Key(), post.Title)

	a.invalidatePages(r.Context())
	http.Redirect(w, r, "/posts/"+post.Key(), http.StatusSeeOther)
}

// DeletePost removes a post and its subscriptions.
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")

	if err := a.posts.Delete(r.Context(), middleware.PrincipalFromCtx(r.Context()), key); err != nil {
		a.writeError(w, "delete post", err)
		return
	}

	a.invalidatePages(r.Context())
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// CreateCategory adds a category from the inline form on the categories
// page.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	description := r.FormValue("description")

	if msg := validateCategory(name, description); msg != "" {
		http.Redirect(w, r, "/categories?notice=invalid-category", http.StatusSeeOther)
		return
	}

	_, err := a.cats.Create(r.Context(), middleware.PrincipalFromCtx(r.Context()), name, description)
	if err != nil {
		if errors.Is(err, store.ErrEmptySlug) {
			http.Redirect(w, r, "/categories?notice=invalid-category", http.StatusSeeOther)
			return
		}
		a.writeError(w, "create category", err)
		return
	}

	a.invalidatePages(r.Context())
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// DeleteCategory removes a category, refusing while posts still
// reference it.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")
	name := r.FormValue("name")

	err := a.cats.Delete(r.Context(), middleware.PrincipalFromCtx(r.Context()), key, name)
	if err != nil {
		if errors.Is(err, store.ErrHasPosts) {
			http.Redirect(w, r, "/categories?notice=has-posts", http.StatusSeeOther)
			return
		}
		a.writeError(w, "delete category", err)
		return
	}

	a.invalidatePages(r.Context())
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// draftFromForm reads and validates the post editor form. Returns a
// non-empty message on validation failure.
func (a *Admin) draftFromForm(r *http.Request) (store.PostDraft, string) {
	title := r.FormValue("title")
	content := r.FormValue("content")
	excerpt := r.FormValue("excerpt")
	category := r.FormValue("category")

	if msg := validatePost(title, content); msg != "" {
		return store.PostDraft{}, msg
	}
	if msg := validateExcerpt(excerpt); msg != "" {
		return store.PostDraft{}, msg
	}

	html, err := markdown.ToHTML(content)
	if err != nil {
		slog.Error("markdown conversion failed", "error", err)
		return store.PostDraft{}, "Content could not be rendered."
	}

	return store.PostDraft{
		Title:       title,
		Content:     content,
		ContentHTML: html,
		Excerpt:     excerpt,
		Category:    category,
	}, ""
}

// writeError logs a store failure and answers with the matching status.
func (a *Admin) writeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrNotAuthorized) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	slog.Error(op+" failed", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/surrealdb/surrealdb.go/pkg/marshal"

	"inkpress/internal/identity"
	"inkpress/internal/models"
)

// PostStore manages the posts collection.
type PostStore struct {
	db   Database
	gate *identity.Gate
}

// NewPostStore returns a new PostStore gated on the given identity gate.
func NewPostStore(db Database, gate *identity.Gate) *PostStore {
	return &PostStore{db: db, gate: gate}
}

// ListOptions narrows a post listing. Zero values mean "no filter".
type ListOptions struct {
	Category string // exact category name match
	Limit    int    // maximum number of posts, 0 = unlimited
}

// PostDraft carries the author-supplied fields of a new or updated post.
// Timestamps and author are assigned by the store, never by the caller.
type PostDraft struct {
	Title       string
	Content     string
	ContentHTML string
	Excerpt     string
	Category    string
}

// postRef is the projection used when only ids are needed.
type postRef struct {
	ID string `json:"id"`
}

// List returns posts ordered by createdAt descending, optionally filtered
// by exact category and capped in count. Any store failure is logged and
// returned as an empty slice — callers cannot tell it apart from "no
// posts", which is the accepted tradeoff for public pages.
func (s *PostStore) List(ctx context.Context, opts ListOptions) []models.Post {
	sql := "SELECT * FROM posts"
	vars := map[string]any{}
	if opts.Category != "" {
		sql += " WHERE category = $category"
		vars["category"] = opts.Category
	}
	sql += " ORDER BY createdAt DESC"
	if opts.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	posts, err := marshal.SmartUnmarshal[models.Post](s.db.Query(sql, vars))
	if err != nil {
		slog.Error("list posts failed", "error", err, "category", opts.Category)
		return nil
	}
	return posts
}

// Get retrieves a single post by its record key. Returns nil when the
// post is absent or the store is unavailable.
func (s *PostStore) Get(ctx context.Context, key string) *models.Post {
	posts, err := marshal.SmartUnmarshal[models.Post](s.db.Query(
		"SELECT * FROM type::thing('posts', $id)",
		map[string]any{"id": key},
	))
	if err != nil {
		slog.Error("get post failed", "error", err, "id", key)
		return nil
	}
	if len(posts) == 0 {
		return nil
	}
	return &posts[0]
}

// CountByCategory returns the number of posts referencing the category
// name. The count comes from a full query of matching documents, not a
// stored counter. Returns 0 on failure.
func (s *PostStore) CountByCategory(ctx context.Context, name string) int {
	refs, err := marshal.SmartUnmarshal[postRef](s.db.Query(
		"SELECT id FROM posts WHERE category = $category",
		map[string]any{"category": name},
	))
	if err != nil {
		slog.Error("count posts by category failed", "error", err, "category", name)
		return 0
	}
	return len(refs)
}

// Create inserts a new post. Only the admin principal may create; the
// author field is stamped with the admin email and both timestamps are
// assigned server-side. Returns the created post with its new id.
func (s *PostStore) Create(ctx context.Context, p *identity.Principal, draft PostDraft) (*models.Post, error) {
	if !s.gate.IsAdmin(p) {
		return nil, ErrNotAuthorized
	}

	posts, err := marshal.SmartUnmarshal[models.Post](s.db.Query(
		`CREATE posts CONTENT {
			title: $title,
			content: $content,
			contentHtml: $contentHtml,
			excerpt: $excerpt,
			category: $category,
			author: $author,
			createdAt: time::now(),
			updatedAt: time::now()
		}`,
		map[string]any{
			"title":       draft.Title,
			"content":     draft.Content,
			"contentHtml": draft.ContentHTML,
			"excerpt":     draft.Excerpt,
			"category":    draft.Category,
			"author":      p.Email,
		},
	))
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("create post: store returned no document")
	}
	return &posts[0], nil
}

// Update merges the draft fields into an existing post and refreshes
// updatedAt server-side. createdAt and author are never touched. The
// caller is responsible for triggering subscriber notification — a
// notification failure must not roll back the update.
func (s *PostStore) Update(ctx context.Context, p *identity.Principal, key string, draft PostDraft) (*models.Post, error) {
	if !s.gate.IsAdmin(p) {
		return nil, ErrNotAuthorized
	}

	posts, err := marshal.SmartUnmarshal[models.Post](s.db.Query(
		`UPDATE type::thing('posts', $id) MERGE {
			title: $title,
			content: $content,
			contentHtml: $contentHtml,
			excerpt: $excerpt,
			category: $category,
			updatedAt: time::now()
		}`,
		map[string]any{
			"id":          key,
			"title":       draft.Title,
			"content":     draft.Content,
			"contentHtml": draft.ContentHTML,
			"excerpt":     draft.Excerpt,
			"category":    draft.Category,
		},
	))
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", key, err)
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}
	return &posts[0], nil
}

// Delete removes a post, then removes every subscription referencing it.
// The subscription cleanup is a single statement, so the batch is atomic
// as a set — but the pair of statements is not atomic: a crash between
// them can orphan subscription documents. Accepted for this deployment;
// orphans are never garbage-collected.
func (s *PostStore) Delete(ctx context.Context, p *identity.Principal, key string) error {
	if !s.gate.IsAdmin(p) {
		return ErrNotAuthorized
	}

	if _, err := s.db.Query(
		"DELETE type::thing('posts', $id)",
		map[string]any{"id": key},
	); err != nil {
		return fmt.Errorf("delete post %s: %w", key, err)
	}

	if _, err := s.db.Query(
		"DELETE subscriptions WHERE blogId = $blogId",
		map[string]any{"blogId": key},
	); err != nil {
		return fmt.Errorf("delete subscriptions for post %s: %w", key, err)
	}

	return nil
}

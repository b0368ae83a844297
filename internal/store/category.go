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
	"inkpress/internal/slug"
)

// CategoryStore manages the categories collection. It holds a PostStore
// because category deletion depends on a live count of referencing posts.
type CategoryStore struct {
	db    Database
	gate  *identity.Gate
	posts *PostStore
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db Database, gate *identity.Gate, posts *PostStore) *CategoryStore {
	return &CategoryStore{db: db, gate: gate, posts: posts}
}

// List returns all categories ordered by name ascending. A store failure
// is logged and returned as an empty slice.
func (s *CategoryStore) List(ctx context.Context) []models.Category {
	cats, err := marshal.SmartUnmarshal[models.Category](s.db.Query(
		"SELECT * FROM categories ORDER BY name ASC", map[string]any{},
	))
	if err != nil {
		slog.Error("list categories failed", "error", err)
		return nil
	}
	return cats
}

// Create inserts a new category. The slug is derived from the name once,
// here, and never recomputed (name is immutable — no update operation
// exists). A name that derives to an empty slug is rejected with
// ErrEmptySlug before any store call.
func (s *CategoryStore) Create(ctx context.Context, p *identity.Principal, name, description string) (*models.Category, error) {
	if !s.gate.IsAdmin(p) {
		return nil, ErrNotAuthorized
	}

	sl := slug.Derive(name)
	if sl == "" {
		return nil, ErrEmptySlug
	}

	cats, err := marshal.SmartUnmarshal[models.Category](s.db.Query(
		`CREATE categories CONTENT {
			name: $name,
			slug: $slug,
			description: $description,
			createdAt: time::now()
		}`,
		map[string]any{
			"name":        name,
			"slug":        sl,
			"description": description,
		},
	))
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("create category: store returned no document")
	}
	return &cats[0], nil
}

// Delete removes a category, refusing with ErrHasPosts while any post
// still references its name. The count and the delete are two separate
// store calls: a post created in between leaves a dangling category
// reference. Accepted race for a single-admin deployment.
func (s *CategoryStore) Delete(ctx context.Context, p *identity.Principal, key, name string) error {
	if !s.gate.IsAdmin(p) {
		return ErrNotAuthorized
	}

	if n := s.posts.CountByCategory(ctx, name); n > 0 {
		return fmt.Errorf("%w: %d posts reference %q", ErrHasPosts, n, name)
	}

	if _, err := s.db.Query(
		"DELETE type::thing('categories', $id)",
		map[string]any{"id": key},
	); err != nil {
		return fmt.Errorf("delete category %s: %w", key, err)
	}
	return nil
}

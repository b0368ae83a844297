// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handlers_test.go provides shared fixtures: an in-memory fake of the
// SurrealDB client, a parsed renderer, and request helpers for principal
// injection and chi URL parameters.
package handlers

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/identity"
	"inkpress/internal/middleware"
	"inkpress/internal/render"
	"inkpress/internal/session"
	"inkpress/internal/store"
)

const testAdminEmail = "admin@inkpress.local"

// queryCall records one Query invocation.
type queryCall struct {
	sql  string
	vars map[string]any
}

// fakeDB implements store.Database in memory, returning canned raw-query
// responses in the shape the real client produces. It is mutex-guarded
// because the update handler fans out notifications on a goroutine.
type fakeDB struct {
	mu      sync.Mutex
	queries []queryCall
	deletes []string

	// respond, when set, supplies the response for each Query call.
	// When nil every query returns an empty OK result.
	respond func(sql string, vars map[string]any) (any, error)
}

func (f *fakeDB) Query(sql string, vars map[string]any) (any, error) {
	f.mu.Lock()
	f.queries = append(f.queries, queryCall{sql: sql, vars: vars})
	f.mu.Unlock()
	if f.respond != nil {
		return f.respond(sql, vars)
	}
	return rawOK(), nil
}

func (f *fakeDB) Delete(what string) (any, error) {
	f.mu.Lock()
	f.deletes = append(f.deletes, what)
	f.mu.Unlock()
	return nil, nil
}

// queryAt returns a recorded query under the lock, for tests asserting
// while a background fan-out may still be running.
func (f *fakeDB) queryAt(i int) queryCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[i]
}

// rawOK builds the raw response for a statement returning the given
// documents.
func rawOK(docs ...map[string]any) any {
	results := make([]any, 0, len(docs))
	for _, d := range docs {
		results = append(results, d)
	}
	return []any{
		map[string]any{
			"time":   "152.5µs",
			"status": "OK",
			"result": results,
		},
	}
}

// postDoc builds a raw post document as the store returns it.
func postDoc(id, title string) map[string]any {
	return map[string]any{
		"id":          id,
		"title":       title,
		"content":     "Body of " + title,
		"contentHtml": "<p>Body of " + title + "</p>",
		"author":      testAdminEmail,
		"createdAt":   "2026-03-01T10:00:00Z",
		"updatedAt":   "2026-03-01T10:00:00Z",
	}
}

// testEnv bundles the fixtures most handler tests need.
type testEnv struct {
	db       *fakeDB
	gate     *identity.Gate
	renderer *render.Renderer
	posts    *store.PostStore
	cats     *store.CategoryStore
	subs     *store.SubscriptionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := &fakeDB{}
	gate := identity.NewGate(testAdminEmail)

	renderer, err := render.New(gate)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	posts := store.NewPostStore(db, gate)
	return &testEnv{
		db:       db,
		gate:     gate,
		renderer: renderer,
		posts:    posts,
		cats:     store.NewCategoryStore(db, gate, posts),
		subs:     store.NewSubscriptionStore(db),
	}
}

// asAdmin attaches an authenticated admin session and principal to the
// request context, simulating the state after LoadSession.
func asAdmin(r *http.Request) *http.Request {
	data := &session.Data{Email: testAdminEmail, DisplayName: "Administrator", TwoFADone: true}
	ctx := context.WithValue(r.Context(), middleware.SessionKey, data)
	ctx = context.WithValue(ctx, middleware.PrincipalKey, &identity.Principal{
		Email:       data.Email,
		DisplayName: data.DisplayName,
	})
	return r.WithContext(ctx)
}

// asVisitor attaches a signed-in non-admin principal to the request.
func asVisitor(r *http.Request) *http.Request {
	data := &session.Data{Email: "visitor@inkpress.local", DisplayName: "Visitor", TwoFADone: true}
	ctx := context.WithValue(r.Context(), middleware.SessionKey, data)
	ctx = context.WithValue(ctx, middleware.PrincipalKey, &identity.Principal{
		Email:       data.Email,
		DisplayName: data.DisplayName,
	})
	return r.WithContext(ctx)
}

// withURLParam attaches a chi route parameter to the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

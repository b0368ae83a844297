// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared in-memory fake of the SurrealDB client.
// The fake records every statement and returns canned raw-query responses
// in the shape the real client produces, so the stores' decoding path is
// exercised end to end without a live database.
package store

import (
	"testing"

	"inkpress/internal/identity"
)

// queryCall records one Query invocation.
type queryCall struct {
	sql  string
	vars map[string]any
}

// fakeDB implements Database in memory.
type fakeDB struct {
	queries []queryCall
	deletes []string

	// respond, when set, supplies the response for each Query call.
	// When nil every query returns an empty OK result.
	respond func(sql string, vars map[string]any) (any, error)
}

func (f *fakeDB) Query(sql string, vars map[string]any) (any, error) {
	f.queries = append(f.queries, queryCall{sql: sql, vars: vars})
	if f.respond != nil {
		return f.respond(sql, vars)
	}
	return rawOK(), nil
}

func (f *fakeDB) Delete(what string) (any, error) {
	f.deletes = append(f.deletes, what)
	return nil, nil
}

// rawOK builds the raw response for a statement returning the given
// documents: a one-element array of {time, status, result}.
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

const testAdminEmail = "admin@example.com"

// testGate returns an identity gate plus admin and visitor principals.
func testGate() (*identity.Gate, *identity.Principal, *identity.Principal) {
	gate := identity.NewGate(testAdminEmail)
	admin := &identity.Principal{Email: testAdminEmail, DisplayName: "Admin"}
	visitor := &identity.Principal{Email: "visitor@example.com", DisplayName: "Visitor"}
	return gate, admin, visitor
}

// postDoc builds a raw post document as the store returns it.
func postDoc(id, title, category, createdAt string) map[string]any {
	return map[string]any{
		"id":        id,
		"title":     title,
		"content":   "Body of " + title,
		"category":  category,
		"author":    testAdminEmail,
		"createdAt": createdAt,
		"updatedAt": createdAt,
	}
}

func assertNoCalls(t *testing.T, db *fakeDB) {
	t.Helper()
	if len(db.queries) != 0 || len(db.deletes) != 0 {
		t.Fatalf("store was called: %d queries, %d deletes — rejected operations must not touch the store",
			len(db.queries), len(db.deletes))
	}
}

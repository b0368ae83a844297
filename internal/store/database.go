// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides typed operations over the three document
// collections (posts, categories, subscriptions) in SurrealDB.
//
// Reads degrade softly: a store failure is logged and surfaces as an
// empty result, indistinguishable from "nothing there". Mutations are
// gated on the admin principal and return sentinel errors from errors.go.
package store

import (
	"fmt"
	"log/slog"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

// Database is the slice of the SurrealDB client the stores depend on.
// *surrealdb.DB satisfies it; tests substitute an in-memory fake.
type Database interface {
	// Query executes a SurrealQL statement with named parameters and
	// returns the raw response.
	Query(sql string, vars map[string]any) (any, error)

	// Delete removes a single record by its full "<table>:<key>" id.
	Delete(what string) (any, error)
}

// Connect dials SurrealDB, authenticates, and selects the namespace and
// database. The returned handle is safe to share across stores.
func Connect(url, ns, db, user, pass string) (*surrealdb.DB, error) {
	conn, err := surrealdb.New(url)
	if err != nil {
		return nil, fmt.Errorf("surrealdb dial: %w", err)
	}

	if _, err := conn.Signin(map[string]any{"user": user, "pass": pass}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("surrealdb signin: %w", err)
	}

	if _, err := conn.Use(ns, db); err != nil {
		conn.Close()
		return nil, fmt.Errorf("surrealdb use %s/%s: %w", ns, db, err)
	}

	slog.Info("surrealdb connected", "url", url, "ns", ns, "db", db)
	return conn, nil
}

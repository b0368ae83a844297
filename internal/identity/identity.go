// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package identity wraps the session-established principal behind a small
// gate: who is signed in, whether they are the configured admin, and a
// push-style subscription for auth-state changes.
package identity

import (
	"log/slog"
	"sync"
)

// Principal is an authenticated identity established by the session layer.
// A nil *Principal means "no one is signed in".
type Principal struct {
	Email       string
	DisplayName string
}

// Gate answers admin questions against the single configured admin email
// and fans auth-state changes out to registered watchers. All methods are
// safe for concurrent use.
type Gate struct {
	adminEmail string

	mu       sync.RWMutex
	watchers []func(*Principal)
}

// NewGate creates a gate for the given admin email.
func NewGate(adminEmail string) *Gate {
	return &Gate{adminEmail: adminEmail}
}

// IsAdmin reports whether the principal is present and its email equals
// the configured admin email. The match is exact and case-sensitive.
func (g *Gate) IsAdmin(p *Principal) bool {
	return p != nil && p.Email == g.adminEmail
}

// AdminEmail returns the configured admin address. It is stamped as the
// author on every created post.
func (g *Gate) AdminEmail() string {
	return g.adminEmail
}

// Watch registers a listener invoked on every auth-state change. The
// principal is the newly signed-in identity, or nil on sign-out.
func (g *Gate) Watch(fn func(*Principal)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.watchers = append(g.watchers, fn)
}

// StateChanged notifies all watchers of a sign-in (p non-nil) or sign-out
// (p nil). Watchers run synchronously in registration order.
func (g *Gate) StateChanged(p *Principal) {
	g.mu.RLock()
	watchers := make([]func(*Principal), len(g.watchers))
	copy(watchers, g.watchers)
	g.mu.RUnlock()

	if p != nil {
		slog.Info("auth state changed", "email", p.Email, "admin", g.IsAdmin(p))
	} else {
		slog.Info("auth state changed", "email", "", "admin", false)
	}

	for _, fn := range watchers {
		fn(p)
	}
}

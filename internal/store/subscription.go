// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/surrealdb/surrealdb.go/pkg/marshal"

	"inkpress/internal/models"
)

// SubscriptionStore manages the subscriptions collection. Subscribing and
// unsubscribing are visitor operations — no admin gate.
type SubscriptionStore struct {
	db Database
}

// NewSubscriptionStore returns a new SubscriptionStore.
func NewSubscriptionStore(db Database) *SubscriptionStore {
	return &SubscriptionStore{db: db}
}

// emailSanitizer collapses an email address into the record-id alphabet.
var emailSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SubscriptionID derives the deterministic record key for a (post, email)
// pair. The same visitor subscribing twice to the same post collides onto
// the same record, so the upsert needs no duplicate-detection read.
func SubscriptionID(postKey, email string) string {
	return postKey + "_" + emailSanitizer.ReplaceAllString(email, "_")
}

// Subscribe registers an email for update notifications on a post. The
// email is validated only for the presence of an "@"; after validation
// passes the call is an idempotent upsert — re-subscribing overwrites the
// existing document and refreshes subscribedAt.
func (s *SubscriptionStore) Subscribe(ctx context.Context, postKey, email string) error {
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	if _, err := s.db.Query(
		`UPDATE type::thing('subscriptions', $id) CONTENT {
			blogId: $blogId,
			email: $email,
			subscribedAt: time::now()
		}`,
		map[string]any{
			"id":     SubscriptionID(postKey, email),
			"blogId": postKey,
			"email":  email,
		},
	); err != nil {
		return fmt.Errorf("subscribe %s to post %s: %w", email, postKey, err)
	}
	return nil
}

// Unsubscribe removes the subscription for the exact (post, email) pair.
// Returns ErrNotFound, without a delete, when no such subscription exists.
// By the deterministic-id invariant at most one match can exist.
func (s *SubscriptionStore) Unsubscribe(ctx context.Context, postKey, email string) error {
	subs, err := marshal.SmartUnmarshal[models.Subscription](s.db.Query(
		"SELECT * FROM subscriptions WHERE blogId = $blogId AND email = $email",
		map[string]any{"blogId": postKey, "email": email},
	))
	if err != nil {
		return fmt.Errorf("unsubscribe lookup for post %s: %w", postKey, err)
	}
	if len(subs) == 0 {
		return ErrNotFound
	}

	if _, err := s.db.Delete(subs[0].ID); err != nil {
		return fmt.Errorf("unsubscribe delete %s: %w", subs[0].ID, err)
	}
	return nil
}

// ListByPost returns every subscription registered for a post. A store
// failure is logged and returned as an empty slice, so fan-out simply
// reaches no one.
func (s *SubscriptionStore) ListByPost(ctx context.Context, postKey string) []models.Subscription {
	subs, err := marshal.SmartUnmarshal[models.Subscription](s.db.Query(
		"SELECT * FROM subscriptions WHERE blogId = $blogId",
		map[string]any{"blogId": postKey},
	))
	if err != nil {
		slog.Error("list subscriptions failed", "error", err, "post", postKey)
		return nil
	}
	return subs
}

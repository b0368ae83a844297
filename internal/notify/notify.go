// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package notify fans a post-update notification out to its subscribers.
// Every recipient gets an independent best-effort send: one failure never
// blocks the rest, nothing is retried, and the operation as a whole never
// fails outward — the triggering update must not be held hostage by a
// slow or broken relay.
package notify

import (
	"context"
	"log/slog"

	"inkpress/internal/mailer"
	"inkpress/internal/models"
)

// SubscriptionSource lists the subscriptions registered for a post.
// *store.SubscriptionStore satisfies it.
type SubscriptionSource interface {
	ListByPost(ctx context.Context, postKey string) []models.Subscription
}

// SendFailure records one recipient the relay could not reach.
type SendFailure struct {
	Email string
	Err   error
}

// Report summarizes a fan-out: how many sends were attempted, how many
// the relay accepted, and who failed. Zero subscribers yields the zero
// Report and no relay traffic.
type Report struct {
	Attempted int
	Sent      int
	Failures  []SendFailure
}

// Notifier dispatches subscriber notifications through the email relay.
type Notifier struct {
	subs     SubscriptionSource
	relay    mailer.Relay
	baseURL  string
	fromName string
}

// New creates a Notifier. relay may be nil when the relay is not
// configured; fan-out then skips sending and reports every recipient as
// failed.
func New(subs SubscriptionSource, relay mailer.Relay, baseURL, fromName string) *Notifier {
	return &Notifier{subs: subs, relay: relay, baseURL: baseURL, fromName: fromName}
}

// NotifySubscribers sends the update notification for a post to every
// subscribed address and returns the per-recipient outcome.
func (n *Notifier) NotifySubscribers(ctx context.Context, postKey, postTitle string) Report {
	subs := n.subs.ListByPost(ctx, postKey)
	if len(subs) == 0 {
		return Report{}
	}

	report := Report{Attempted: len(subs)}
	postURL := n.baseURL + "/posts/" + postKey

	for _, sub := range subs {
		if n.relay == nil {
			report.Failures = append(report.Failures, SendFailure{Email: sub.Email})
			continue
		}
		err := n.relay.Send(ctx, map[string]string{
			"to_email":   sub.Email,
			"post_title": postTitle,
			"post_url":   postURL,
			"from_name":  n.fromName,
		})
		if err != nil {
			slog.Error("notification send failed", "email", sub.Email, "post", postKey, "error", err)
			report.Failures = append(report.Failures, SendFailure{Email: sub.Email, Err: err})
			continue
		}
		report.Sent++
	}

	slog.Info("subscribers notified",
		"post", postKey,
		"attempted", report.Attempted,
		"sent", report.Sent,
		"failed", len(report.Failures),
	)
	return report
}

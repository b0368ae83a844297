// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package notify

import (
	"context"
	"errors"
	"testing"

	"inkpress/internal/models"
)

type fakeSubs struct {
	byPost map[string][]models.Subscription
}

func (f *fakeSubs) ListByPost(_ context.Context, postKey string) []models.Subscription {
	return f.byPost[postKey]
}

type fakeRelay struct {
	sent    []map[string]string
	failFor map[string]error
}

func (f *fakeRelay) Send(_ context.Context, vars map[string]string) error {
	if err, ok := f.failFor[vars["to_email"]]; ok {
		return err
	}
	f.sent = append(f.sent, vars)
	return nil
}

func TestNotifySubscribersNoSubscriptions(t *testing.T) {
	relay := &fakeRelay{}
	n := New(&fakeSubs{byPost: map[string][]models.Subscription{}}, relay, "http://localhost:8080", "Inkpress")

	report := n.NotifySubscribers(context.Background(), "p1", "Hello")

	if report.Attempted != 0 || report.Sent != 0 || len(report.Failures) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if len(relay.sent) != 0 {
		t.Errorf("relay should not be contacted with no subscribers, sent %d", len(relay.sent))
	}
}

func TestNotifySubscribersFanOut(t *testing.T) {
	subs := &fakeSubs{byPost: map[string][]models.Subscription{
		"p1": {
			{ID: "subscriptions:a", BlogID: "p1", Email: "one@example.com"},
			{ID: "subscriptions:b", BlogID: "p1", Email: "two@example.com"},
		},
	}}
	relay := &fakeRelay{}
	n := New(subs, relay, "https://blog.example.com", "Inkpress")

	report := n.NotifySubscribers(context.Background(), "p1", "Release notes")

	if report.Attempted != 2 || report.Sent != 2 || len(report.Failures) != 0 {
		t.Fatalf("report = %+v", report)
	}
	if len(relay.sent) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(relay.sent))
	}
	first := relay.sent[0]
	if first["to_email"] != "one@example.com" {
		t.Errorf("to_email = %q", first["to_email"])
	}
	if first["post_title"] != "Release notes" {
		t.Errorf("post_title = %q", first["post_title"])
	}
	if first["post_url"] != "https://blog.example.com/posts/p1" {
		t.Errorf("post_url = %q", first["post_url"])
	}
	if first["from_name"] != "Inkpress" {
		t.Errorf("from_name = %q", first["from_name"])
	}
}

func TestNotifySubscribersPartialFailure(t *testing.T) {
	subs := &fakeSubs{byPost: map[string][]models.Subscription{
		"p1": {
			{Email: "ok@example.com"},
			{Email: "broken@example.com"},
			{Email: "also-ok@example.com"},
		},
	}}
	relayErr := errors.New("mailbox unavailable")
	relay := &fakeRelay{failFor: map[string]error{"broken@example.com": relayErr}}
	n := New(subs, relay, "http://localhost:8080", "Inkpress")

	report := n.NotifySubscribers(context.Background(), "p1", "Hello")

	if report.Attempted != 3 {
		t.Errorf("Attempted = %d", report.Attempted)
	}
	if report.Sent != 2 {
		t.Errorf("Sent = %d, one failure must not stop the rest", report.Sent)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("Failures = %+v", report.Failures)
	}
	if report.Failures[0].Email != "broken@example.com" || !errors.Is(report.Failures[0].Err, relayErr) {
		t.Errorf("failure = %+v", report.Failures[0])
	}
}

func TestNotifySubscribersNilRelay(t *testing.T) {
	subs := &fakeSubs{byPost: map[string][]models.Subscription{
		"p1": {{Email: "reader@example.com"}},
	}}
	n := New(subs, nil, "http://localhost:8080", "Inkpress")

	report := n.NotifySubscribers(context.Background(), "p1", "Hello")

	if report.Attempted != 1 || report.Sent != 0 || len(report.Failures) != 1 {
		t.Errorf("report = %+v", report)
	}
}

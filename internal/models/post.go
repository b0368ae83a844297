// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the documents stored in the three content
// collections: posts, categories, and subscriptions.
package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// wordsPerMinute is the assumed reading speed for the read-time estimate.
const wordsPerMinute = 200

// excerptRunes is how much of the content body stands in for a missing excerpt.
const excerptRunes = 200

// Post is one blog entry. The ID is assigned by the store at creation and
// immutable afterwards; Category references a Category by name with no
// enforced integrity, so orphaned category strings are permitted.
type Post struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Category    string    `json:"category,omitempty"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Key returns the record key without the collection prefix, suitable for
// URLs. SurrealDB record ids come back as "<table>:<key>".
func (p Post) Key() string {
	return RecordKey(p.ID)
}

// ReadTime estimates reading time in whole minutes, never below one.
func (p Post) ReadTime() int {
	words := len(strings.Fields(p.Content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Summary returns the excerpt, or the leading part of the content when no
// excerpt was written.
func (p Post) Summary() string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	if utf8.RuneCountInString(p.Content) <= excerptRunes {
		return p.Content
	}
	return string([]rune(p.Content)[:excerptRunes]) + "..."
}

// CategoryOrDefault returns the category label shown on listings.
func (p Post) CategoryOrDefault() string {
	if p.Category == "" {
		return "Uncategorized"
	}
	return p.Category
}

// RecordKey strips the collection prefix from a SurrealDB record id.
// Ids without a prefix pass through unchanged.
func RecordKey(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}

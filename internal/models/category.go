// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category is a named post grouping. Name is immutable (there is no update
// operation), and Slug is derived from it once at creation time.
type Category struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	// PostCount is a live count filled in by the caller for display; it is
	// never stored.
	PostCount int `json:"-"`
}

// Key returns the record key without the collection prefix.
func (c Category) Key() string {
	return RecordKey(c.ID)
}

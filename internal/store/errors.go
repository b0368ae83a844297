// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "errors"

var (
	// ErrNotAuthorized is returned by every mutating operation attempted
	// by a principal other than the configured admin. No store call is
	// made in that case.
	ErrNotAuthorized = errors.New("store: operation requires the admin principal")

	// ErrNotFound is returned when a lookup target does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrHasPosts blocks category deletion while posts still reference
	// the category name.
	ErrHasPosts = errors.New("store: category still has posts assigned")

	// ErrInvalidEmail rejects subscription emails without an "@".
	ErrInvalidEmail = errors.New("store: invalid email address")

	// ErrEmptySlug rejects category names that derive to an empty slug.
	ErrEmptySlug = errors.New("store: category name produces an empty slug")
)

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Subscription registers one (post, email) pair for update notifications.
// Its record id is deterministic — derived from the post key and the
// sanitized email — so re-subscribing collides onto the same document and
// the (post, email) uniqueness invariant holds structurally, without a
// uniqueness constraint or a read-before-write.
type Subscription struct {
	ID           string    `json:"id,omitempty"`
	BlogID       string    `json:"blogId"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// Key returns the record key without the collection prefix.
func (s Subscription) Key() string {
	return RecordKey(s.ID)
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mailer is the client for the transactional email relay. The
// relay is fire-and-forget: a send either gets an immediate accept or an
// error, and there is no delivery confirmation beyond that.
package mailer

import "context"

// Relay delivers one templated notification. The variables map fills the
// relay-side template (to_email, post_title, post_url, from_name).
type Relay interface {
	Send(ctx context.Context, vars map[string]string) error
}

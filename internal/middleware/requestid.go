// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// RequestIDKey is the context key for the request ID.
	RequestIDKey contextKey = "request_id"

	// RequestIDHeader is the response header carrying the request ID.
	RequestIDHeader = "X-Request-ID"
)

// RequestID assigns a UUID to every request, stores it in the context,
// and echoes it back in the response headers. An incoming X-Request-ID
// from a trusted proxy is reused so IDs correlate across hops.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, id)
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromCtx extracts the request ID from the context. Returns the
// empty string when the RequestID middleware is not in the chain.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

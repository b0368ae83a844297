// Package web provides the embedded static assets (CSS, JS) served at
// /static/. Embedding keeps the binary self-contained for deployment.
package web

import "embed"

//go:embed all:static
var StaticFS embed.FS

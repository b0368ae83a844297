// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public blog
// and the admin interface. Public pages can be rendered to bytes so the
// page cache can store the finished HTML.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"inkpress/internal/identity"
	"inkpress/internal/middleware"
	"inkpress/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active nav section (e.g., "home", "categories")
	Session   *session.Data  // Current session (nil if unauthenticated)
	IsAdmin   bool           // Whether the signed-in principal is the admin
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
	gate      *identity.Gate
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":      true,
	"2fa_setup":  true,
	"2fa_verify": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New(gate *identity.Gate) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		gate:      gate,
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "active"
				}
				return ""
			},
			// date formats a timestamp for display.
			"date": func(t time.Time) string {
				if t.IsZero() {
					return ""
				}
				return t.Format("January 2, 2006")
			},
			// safeHTML marks precomputed post HTML as trusted. Post content
			// is admin-authored, so this does not open an injection path
			// for visitors.
			"safeHTML": func(s string) template.HTML {
				return template.HTML(s)
			},
		},
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	// Parse each page template paired with the base layout.
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := filepath.Base(e.Name())
		if name == "base.html" {
			continue
		}

		// Strip .html extension for the template name.
		tmplName := name[:len(name)-len(".html")]

		// Standalone templates render as full pages without the base layout.
		var tmpl *template.Template
		var parseErr error

		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				templateFS, "templates/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				templateFS, "templates/base.html", "templates/"+name,
			)
		}

		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a page to the response, filling in the CSRF token,
// session, and admin flag from the request context.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	html, err := rn.Bytes(r, name, data)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// Bytes renders a page to a byte slice so callers can cache the result
// before writing it. The CSRF token, session, and admin flag are filled
// in from the request context.
func (rn *Renderer) Bytes(r *http.Request, name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	// Inject CSRF token from context (set by CSRF middleware).
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	// Inject session and admin flag from context.
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}
	data.IsAdmin = rn.gate.IsAdmin(middleware.PrincipalFromCtx(r.Context()))

	execName := "base.html"
	// Standalone pages use their own root template (not base.html).
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, execName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

package handlers

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"

	"inkpress/internal/config"
	"inkpress/internal/identity"
	"inkpress/internal/middleware"
	"inkpress/internal/render"
	"inkpress/internal/session"
)

// totpIssuer is the issuer label shown in authenticator apps.
const totpIssuer = "Inkpress"

// Auth groups all authentication-related HTTP handlers. There is no user
// table — the single admin identity comes from the environment: email,
// bcrypt password hash, and an optional TOTP secret for the second factor.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
	gate     *identity.Gate
	cfg      *config.Config
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, gate *identity.Gate, cfg *config.Config) *Auth {
	return &Auth{
		renderer: renderer,
		sessions: sessions,
		gate:     gate,
		cfg:      cfg,
	}
}

// twoFAEnabled reports whether a TOTP secret is configured.
func (a *Auth) twoFAEnabled() bool {
	return a.cfg.AdminTOTPSecret != ""
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// If already logged in with 2FA complete, redirect to the dashboard.
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
	})
}

// LoginSubmit processes the login form against the configured admin
// credentials.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if !a.checkCredentials(email, password) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title:   "Sign In",
			Flashes: []render.Flash{{Type: "error", Message: "Invalid email or password."}},
		})
		return
	}

	// Without a configured TOTP secret there is no second factor to wait
	// for, so the session starts fully authenticated.
	data := &session.Data{
		Email:       a.cfg.AdminEmail,
		DisplayName: "Administrator",
		TwoFADone:   !a.twoFAEnabled(),
	}

	if _, err := a.sessions.Create(r.Context(), w, data); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if a.twoFAEnabled() {
		http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
		return
	}

	a.gate.StateChanged(&identity.Principal{Email: data.Email, DisplayName: data.DisplayName})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// checkCredentials validates the submitted email and password against
// the configured admin identity. Both checks run unconditionally so a
// wrong email costs the same time as a wrong password.
func (a *Auth) checkCredentials(email, password string) bool {
	if a.cfg.AdminPasswordHash == "" {
		return false
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.cfg.AdminEmail)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(a.cfg.AdminPasswordHash), []byte(password))

	return emailOK && passwordErr == nil
}

// TwoFASetupPage displays the QR code for enrolling the configured TOTP
// secret into an authenticator app.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	if !a.twoFAEnabled() {
		// Nothing to enroll; 2FA is disabled by configuration.
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	otpURL := fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		totpIssuer, a.cfg.AdminEmail, a.cfg.AdminTOTPSecret, totpIssuer)

	qrPNG, err := qrcode.Encode(otpURL, qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Set Up Two-Factor Authentication",
		Data: map[string]any{
			"QRCode": base64.StdEncoding.EncodeToString(qrPNG),
			"Secret": a.cfg.AdminTOTPSecret,
		},
	})
}

// TwoFAVerifyPage renders the 2FA code entry form.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "2fa_verify", &render.PageData{
		Title: "Two-Factor Authentication",
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	if !a.twoFAEnabled() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	code := r.FormValue("code")
	if !totp.Validate(code, a.cfg.AdminTOTPSecret) {
		a.renderer.Page(w, r, "2fa_verify", &render.PageData{
			Title:   "Two-Factor Authentication",
			Flashes: []render.Flash{{Type: "error", Message: "Invalid code. Please try again."}},
		})
		return
	}

	// Mark 2FA as complete in the session.
	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.gate.StateChanged(&identity.Principal{Email: sess.Email, DisplayName: sess.DisplayName})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	a.gate.StateChanged(nil)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

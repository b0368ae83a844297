// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config holds the relay account and template identifiers.
type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	BaseURL    string
}

// EmailJS implements Relay against the EmailJS REST API
// (POST /email/send).
type EmailJS struct {
	config Config
	client *http.Client
}

// NewEmailJS creates an EmailJS relay client.
func NewEmailJS(cfg Config) *EmailJS {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.emailjs.com/api/v1.0"
	}
	return &EmailJS{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts one templated send request. A non-200 response is an error;
// there is no retry here — per-recipient retry policy belongs to callers,
// and the fan-out deliberately has none.
func (e *EmailJS) Send(ctx context.Context, vars map[string]string) error {
	body := sendRequest{
		ServiceID:      e.config.ServiceID,
		TemplateID:     e.config.TemplateID,
		UserID:         e.config.PublicKey,
		AccessToken:    e.config.PrivateKey,
		TemplateParams: vars,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("emailjs marshal: %w", err)
	}

	url := e.config.BaseURL + "/email/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("emailjs read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("emailjs API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// sendRequest is the EmailJS send payload.
type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

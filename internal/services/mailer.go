package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Mailer is the outbound email delivery boundary. The screening result never
// depends on it; a failed send only surfaces as a status string.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

type httpMailer struct {
	apiKey string
	sender string
	apiURL string
	client *http.Client
}

// NewHTTPMailer builds a Mailer that posts to a Resend-compatible email API.
func NewHTTPMailer(apiKey, sender, apiURL string) Mailer {
	return &httpMailer{
		apiKey: apiKey,
		sender: sender,
		apiURL: apiURL,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type mailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send implements Mailer.
func (m *httpMailer) Send(ctx context.Context, recipient, subject, body string) error {
	if m.apiKey == "" || m.sender == "" {
		return fmt.Errorf("mail delivery is not configured")
	}

	payload, err := json.Marshal(mailPayload{
		From:    m.sender,
		To:      []string{recipient},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail provider returned %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}

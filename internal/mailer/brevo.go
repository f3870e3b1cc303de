package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/membership-service/internal/config"
)

// Message is an outbound transactional email.
type Message struct {
	ToEmail     string
	ToName      string
	Subject     string
	HTMLContent string
	TextContent string
}

// Brevo sends transactional email through the Brevo REST API
// (POST /v3/smtp/email with an api-key header).
type Brevo struct {
	apiKey    string
	baseURL   string
	fromEmail string
	fromName  string
	client    *http.Client
	logger    *zap.Logger
}

// NewBrevo constructs the client.
func NewBrevo(cfg config.EmailConfig, logger *zap.Logger) *Brevo {
	return &Brevo{
		apiKey:    cfg.BrevoAPIKey,
		baseURL:   cfg.BrevoBaseURL,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
	}
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	TextContent string         `json:"textContent"`
}

type brevoResponse struct {
	MessageID string `json:"messageId"`
}

// Send delivers the message and returns the provider message id. The call
// is bounded by the caller's context plus the client timeout.
func (b *Brevo) Send(ctx context.Context, msg Message) (string, error) {
	if b.apiKey == "" {
		return "", errors.New("BREVO_API_KEY not configured")
	}

	payload := brevoRequest{
		Sender:      brevoAddress{Email: b.fromEmail, Name: b.fromName},
		To:          []brevoAddress{{Email: msg.ToEmail, Name: msg.ToName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTMLContent,
		TextContent: msg.TextContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("brevo responded %d: %s", resp.StatusCode, string(excerpt))
	}

	var parsed brevoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode brevo response: %w", err)
	}

	b.logger.Info("email sent", zap.String("message_id", parsed.MessageID), zap.String("to", msg.ToEmail))
	return parsed.MessageID, nil
}

// Package brevo implements mailer.Sender using the Brevo transactional
// email HTTP API (v3 smtp/email endpoint).
package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mailrelay/pkg/mailer"
)

const providerName = "brevo"

// maxResponseBody caps how much of a provider response is kept.
const maxResponseBody = 4 << 10

// Sender implements mailer.Sender against the Brevo API.
type Sender struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// New creates a new Brevo sender. The client's default timeout applies to
// every delivery attempt; the relay does not override it.
func New(cfg Config) *Sender {
	return &Sender{
		client:  http.DefaultClient,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// sendRequest is the wire shape of POST /smtp/email.
type sendRequest struct {
	Sender      mailer.Address   `json:"sender"`
	To          []mailer.Address `json:"to"`
	CC          []mailer.Address `json:"cc,omitempty"`
	Subject     string           `json:"subject"`
	HTMLContent string           `json:"htmlContent"`
	Tags        []string         `json:"tags,omitempty"`
}

// errorResponse is the structured error body Brevo returns on non-2xx.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Name implements mailer.Sender.
func (s *Sender) Name() string { return providerName }

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Result, error) {
	payload := sendRequest{
		Sender:      email.Sender,
		To:          email.To,
		Subject:     email.Subject,
		HTMLContent: email.HTML,
	}
	// An empty cc list must never reach the provider.
	if len(email.CC) > 0 {
		payload.CC = email.CC
	}
	if email.Category != "" {
		payload.Tags = []string{email.Category}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("brevo: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/smtp/email", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("brevo: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brevo: send request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("brevo: read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, s.asProviderError(resp.StatusCode, raw)
	}

	return decodeResult(raw), nil
}

// asProviderError maps a non-2xx response into a structured ProviderError,
// extracting Brevo's error code when the body parses as JSON.
func (s *Sender) asProviderError(status int, raw []byte) error {
	perr := &mailer.ProviderError{
		Provider:   providerName,
		StatusCode: status,
		Body:       strings.TrimSpace(string(raw)),
	}
	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Code != "" {
		perr.Code = body.Code
	}
	return perr
}

// decodeResult extracts the messageId and keeps the decoded body as the
// opaque data echoed back to relay clients.
func decodeResult(raw []byte) *mailer.Result {
	result := &mailer.Result{}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err == nil {
		result.Raw = decoded
		if id, ok := decoded["messageId"].(string); ok {
			result.MessageID = id
		}
		return result
	}

	// Some endpoints (e.g. 201 with empty body) return nothing useful.
	if len(bytes.TrimSpace(raw)) > 0 {
		result.Raw = string(raw)
	}
	return result
}

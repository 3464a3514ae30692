package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mailrelay/internal/respond"
	"github.com/dmitrymomot/mailrelay/pkg/logger"
	"github.com/dmitrymomot/mailrelay/pkg/mailer"
)

// RecipientList accepts either a single address string or a list of
// address strings on the wire.
type RecipientList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *RecipientList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = RecipientList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = RecipientList(many)
	return nil
}

// SendEmailRequest is the inbound payload of POST /send-email.
type SendEmailRequest struct {
	To        RecipientList `json:"to"`
	Subject   string        `json:"subject"`
	HTML      string        `json:"html"`
	CC        []string      `json:"cc"`
	From      string        `json:"from"`
	Name      string        `json:"name"`
	EmailType string        `json:"emailType"`
}

// Send dispatches validated requests to the configured delivery provider.
type Send struct {
	sender        mailer.Sender
	defaultSender mailer.Address
	log           *slog.Logger
}

// NewSend creates the send-email handler. defaultSender is used when the
// payload carries no sender override.
func NewSend(sender mailer.Sender, defaultSender mailer.Address, log *slog.Logger) *Send {
	if log == nil {
		log = logger.NewNope()
	}
	return &Send{sender: sender, defaultSender: defaultSender, log: log}
}

// ServeHTTP implements http.Handler for POST /send-email.
func (h *Send) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		respond.Error(w, http.StatusBadRequest, "Content-Type must be application/json", "")
		return
	}

	var req SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON body: "+err.Error(), "")
		return
	}

	email, err := buildEmail(&req, h.defaultSender)
	if err != nil {
		// Client-correctable; the provider is never called.
		respond.Error(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.sender.Send(r.Context(), email)
	if err != nil {
		msg := err.Error()
		if perr, ok := mailer.AsProviderError(err); ok {
			msg = perr.Error()
		}
		h.log.ErrorContext(r.Context(), "email dispatch failed",
			slog.String("provider", h.sender.Name()),
			slog.String("category", email.Category),
			slog.String("error", msg),
		)
		respond.Error(w, http.StatusInternalServerError, msg, "")
		return
	}

	h.log.InfoContext(r.Context(), "email relayed",
		slog.String("provider", h.sender.Name()),
		slog.String("message_id", result.MessageID),
		slog.String("category", email.Category),
		slog.Int("recipients", len(email.To)),
	)

	data := result.Raw
	if data == nil {
		data = map[string]any{"messageId": result.MessageID}
	}
	respond.Success(w, http.StatusOK, "Email sent successfully", data)
}

// buildEmail validates the payload and normalizes it into the provider
// message model. Required fields are checked whitespace-trimmed; content is
// forwarded as received.
func buildEmail(req *SendEmailRequest, defaultSender mailer.Address) (*mailer.Email, error) {
	to := toAddresses(req.To)
	if len(to) == 0 {
		return nil, mailer.ErrNoRecipient
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, mailer.ErrNoSubject
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, mailer.ErrNoContent
	}

	sender := defaultSender
	if addr := strings.TrimSpace(req.From); addr != "" {
		sender = mailer.Address{Email: addr, Name: strings.TrimSpace(req.Name)}
	}

	return &mailer.Email{
		Sender:   sender,
		To:       to,
		CC:       toAddresses(req.CC),
		Subject:  req.Subject,
		HTML:     req.HTML,
		Category: strings.TrimSpace(req.EmailType),
	}, nil
}

// toAddresses normalizes bare address strings into the provider's
// one-object-per-address shape, dropping empty entries.
func toAddresses(values []string) []mailer.Address {
	addrs := make([]mailer.Address, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		addrs = append(addrs, mailer.Address{Email: v})
	}
	if len(addrs) == 0 {
		return nil
	}
	return addrs
}

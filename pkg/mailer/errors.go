package mailer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates no HTML content was provided.
	ErrNoContent = errors.New("email must have HTML content")
)

// ProviderError is a delivery failure for which the provider returned a
// structured error (an HTTP status and, usually, a code and response body).
type ProviderError struct {
	Provider   string // Provider short name, e.g. "brevo"
	StatusCode int    // HTTP status returned by the provider, 0 if unknown
	Code       string // Provider-specific error code, may be empty
	Body       string // Raw response body, may be empty
	Err        error  // Underlying transport error, may be nil
}

// Error composes a readable message from the provider name, status/code,
// and response body. It is surfaced verbatim to relay clients.
func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
	if e.Code != "" {
		msg += fmt.Sprintf(" code=%s", e.Code)
	}
	if e.Body != "" {
		msg += fmt.Sprintf(" body=%s", e.Body)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %s", e.Err.Error())
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AsProviderError extracts a ProviderError from an error chain if present.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

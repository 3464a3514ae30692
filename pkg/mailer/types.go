package mailer

import "fmt"

// Address is a single mailbox with an optional display name.
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// String formats the address in RFC 5322 form.
// Returns "Name <email>" if a name is set, otherwise just the email.
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Email is a fully-prepared message ready for a single delivery attempt.
//
// To, Subject, and HTML are mandatory; Validate enforces this before any
// provider is invoked. CC may be empty, in which case adapters must omit it
// entirely from the provider call.
type Email struct {
	Sender   Address   // Sender identity (always set by the dispatcher)
	To       []Address // Recipients (at least one required)
	CC       []Address // Carbon copy recipients, optional
	Subject  string    // Subject line
	HTML     string    // HTML body content
	Category string    // Free-text label used only for logging/tagging
}

// Validate checks that the mandatory fields are present.
func (e *Email) Validate() error {
	if len(e.To) == 0 {
		return ErrNoRecipient
	}
	if e.Subject == "" {
		return ErrNoSubject
	}
	if e.HTML == "" {
		return ErrNoContent
	}
	return nil
}

// Result is the outcome of a successful delivery attempt.
type Result struct {
	// MessageID is the provider-assigned message identifier, when known.
	MessageID string
	// Raw is the provider response data as returned, echoed to clients verbatim.
	Raw any
}

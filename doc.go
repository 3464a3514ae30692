// Package mailrelay is a stateless HTTP relay for transactional email.
//
// It accepts a send request over HTTP, passes it through a request gate
// (CORS origin authorization, then API key verification), normalizes the
// payload, and forwards it to a pluggable delivery provider (Brevo, Resend,
// or stdout for development). Responses use a uniform JSON envelope.
//
// The relay makes exactly one delivery attempt per request: no retries, no
// queuing, no persistence. Callers retry the whole HTTP call if they need to.
package mailrelay

// Package mailer defines the transactional-email message model and the
// Sender contract that delivery providers implement.
//
// The relay normalizes every inbound request into an Email value and hands
// it to exactly one Sender. Adapters for concrete providers live in the
// subpackages brevo, resend, and stdout.
package mailer

// Package handlers contains the relay's HTTP handlers: the send-email
// dispatcher plus the health, CORS diagnostic, and fallback endpoints.
package handlers

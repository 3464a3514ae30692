package handlers

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/mailrelay/internal/respond"
)

// NotFound handles unmatched routes.
func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.NotFound(w, fmt.Sprintf("route %s %s not found", r.Method, r.URL.Path))
	}
}

// MethodNotAllowed handles known routes hit with the wrong method.
func MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed,
			fmt.Sprintf("method %s not allowed for %s", r.Method, r.URL.Path), "")
	}
}

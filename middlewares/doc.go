// Package middlewares contains the request gate every inbound call passes
// through before dispatch: CORS origin authorization, API key verification,
// request IDs, panic recovery, and request logging.
//
// All middleware uses the standard func(http.Handler) http.Handler shape
// and composes with chi's Use.
package middlewares

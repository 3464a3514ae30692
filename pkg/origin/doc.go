// Package origin provides the allow-list used for CORS origin authorization.
//
// A Set is built once at startup from the built-in base list plus any
// configured extras, and is read-only afterwards. Membership is exact string
// equality after normalization; there is no wildcard or subdomain matching.
package origin

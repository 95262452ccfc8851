// Package middleware provides the HTTP middleware of the swapi server:
// Basic authentication against the users store and request-scoped logging.
package middleware

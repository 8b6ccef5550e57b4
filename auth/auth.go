// Package auth provides client-side authentication helpers for Flight SQL
// connections: bearer-token call credentials, authorization header parsing,
// and context plumbing for tokens obtained from the server handshake.
package auth

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidAuthHeader is returned when the authorization header is malformed.
	ErrInvalidAuthHeader = errors.New("authorization header must use Bearer scheme")

	// ErrTokenIsEmpty is returned when a bearer token is missing or empty.
	ErrTokenIsEmpty = errors.New("authorization token is empty")

	// ErrUnauthenticated is returned when the server rejects the credentials.
	ErrUnauthenticated = errors.New("unauthenticated")
)

const bearerPrefix = "Bearer "

// TokenFromAuthorizationHeader extracts the bearer token from an
// authorization header value of the form "Bearer <token>".
func TokenFromAuthorizationHeader(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthHeader
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", ErrTokenIsEmpty
	}
	return token, nil
}

// AuthorizationHeader formats a bearer token as an authorization header value.
func AuthorizationHeader(token string) string {
	return bearerPrefix + token
}

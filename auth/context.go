package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey int

const (
	// tokenKey is the context key for the bearer token obtained during the
	// authentication handshake.
	tokenKey contextKey = iota
)

// WithBearerToken returns a new context carrying the given bearer token.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// BearerTokenFromContext retrieves the bearer token from context.
// Returns empty string if no token is set.
func BearerTokenFromContext(ctx context.Context) string {
	token, ok := ctx.Value(tokenKey).(string)
	if !ok {
		return ""
	}
	return token
}

// AttachToOutgoing adds the context's bearer token to the outgoing gRPC
// metadata. Returns the context unchanged when no token is present.
func AttachToOutgoing(ctx context.Context) context.Context {
	token := BearerTokenFromContext(ctx)
	if token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", AuthorizationHeader(token))
}

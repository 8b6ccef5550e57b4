package auth

import (
	"context"

	"google.golang.org/grpc/credentials"
)

// bearerCredentials attaches a fixed bearer token to every outgoing call.
type bearerCredentials struct {
	token string
}

// BearerCredentials returns per-RPC credentials that attach
// "authorization: Bearer <token>" to every call. Use for personal access
// tokens obtained out of band, instead of the basic-auth handshake.
func BearerCredentials(token string) credentials.PerRPCCredentials {
	return bearerCredentials{token: token}
}

// GetRequestMetadata implements credentials.PerRPCCredentials.
func (c bearerCredentials) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	if c.token == "" {
		return nil, ErrTokenIsEmpty
	}
	return map[string]string{"authorization": AuthorizationHeader(c.token)}, nil
}

// RequireTransportSecurity implements credentials.PerRPCCredentials.
// Returns false so local plaintext development servers keep working; run
// production connections over TLS.
func (c bearerCredentials) RequireTransportSecurity() bool {
	return false
}

package auth

import (
	"crypto/subtle"
	"errors"
)

// APIKeyHeader is the request header carrying the shared secret.
const APIKeyHeader = "X-API-Key"

var ErrUnauthorized = errors.New("unauthorized")

// APIKeyAuthenticator represents a shared-secret authenticator.
type APIKeyAuthenticator struct {
	secret []byte
}

// NewAPIKeyAuthenticator creates a new APIKeyAuthenticator instance.
// An empty secret rejects every key.
func NewAPIKeyAuthenticator(secret string) APIKeyAuthenticator {
	return APIKeyAuthenticator{secret: []byte(secret)}
}

// Validate returns ErrUnauthorized unless key exactly matches the configured secret.
func (a APIKeyAuthenticator) Validate(key string) error {
	if len(a.secret) == 0 {
		return ErrUnauthorized
	}

	if subtle.ConstantTimeCompare([]byte(key), a.secret) != 1 {
		return ErrUnauthorized
	}

	return nil
}

// Configured reports whether a secret was provided.
func (a APIKeyAuthenticator) Configured() bool {
	return len(a.secret) > 0
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuthenticator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		key     string
		wantErr error
	}{
		{name: "matching key", secret: "secret123", key: "secret123"},
		{name: "wrong key", secret: "secret123", key: "secret124", wantErr: ErrUnauthorized},
		{name: "missing key", secret: "secret123", key: "", wantErr: ErrUnauthorized},
		{name: "prefix of secret", secret: "secret123", key: "secret", wantErr: ErrUnauthorized},
		{name: "case differs", secret: "secret123", key: "SECRET123", wantErr: ErrUnauthorized},
		{name: "empty secret rejects empty key", secret: "", key: "", wantErr: ErrUnauthorized},
		{name: "empty secret rejects any key", secret: "", key: "anything", wantErr: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAPIKeyAuthenticator(tt.secret)
			assert.ErrorIs(t, a.Validate(tt.key), tt.wantErr)
		})
	}
}

func TestAPIKeyAuthenticator_Configured(t *testing.T) {
	assert.True(t, NewAPIKeyAuthenticator("x").Configured())
	assert.False(t, NewAPIKeyAuthenticator("").Configured())
}

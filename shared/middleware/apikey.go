package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/drowsiness-api/shared/auth"
	"github.com/vasapolrittideah/drowsiness-api/shared/response"
)

// RequireAPIKey rejects requests whose X-API-Key header does not pass the authenticator.
func RequireAPIKey(apiKeyAuth auth.APIKeyAuthenticator, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := apiKeyAuth.Validate(r.Header.Get(auth.APIKeyHeader)); err != nil {
				logger.Warn().
					Str("request_id", GetRequestID(r.Context())).
					Str("path", r.URL.Path).
					Bool("key_present", r.Header.Get(auth.APIKeyHeader) != "").
					Msg("rejected request with invalid API key")
				response.Error(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

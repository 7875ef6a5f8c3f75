// Package middleware provides HTTP middleware for the transport layer.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/restmcp/restmcp/internal/transport/transportcore"
)

// NewAuthMiddleware creates bearer-token validation middleware. Tokens are
// validated as HS256 JWTs against the given secret. The middleware is only
// mounted when a secret is configured; an empty secret panics rather than
// silently admitting everything.
func NewAuthMiddleware(secret []byte, responder transportcore.ErrorResponder) transportcore.Middleware {
	if len(secret) == 0 {
		panic("secret cannot be empty")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractBearerToken(r)
			if err != nil {
				responder.Unauthorized(w, err)
				return
			}

			_, err = parser.Parse(token, func(t *jwt.Token) (any, error) {
				return secret, nil
			})
			if err != nil {
				responder.Unauthorized(w, fmt.Errorf("%w: %v", transportcore.ErrInvalidToken, err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractBearerToken extracts the Bearer token from the Authorization header.
// Returns an error if the header is missing or not in the correct format.
//
// Format: Authorization: Bearer <token>
func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", transportcore.ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", transportcore.ErrInvalidToken
	}

	// Scheme is case-insensitive per RFC 6750
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", transportcore.ErrInvalidToken
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", transportcore.ErrMissingToken
	}

	return token, nil
}

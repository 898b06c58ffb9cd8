package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	authgate "github.com/tokenforge/authgate"
)

type subjectContextKey struct{}

// SubjectFromContext returns the subject identifier attached by [Gate] after
// a successful verification.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectContextKey{}).(string)
	return subject, ok
}

// Gate admits or rejects requests on access credential validity. It extracts
// the bearer token from the Authorization header, verifies it statelessly
// through [authgate.Engine.Validate], and injects the resolved subject into
// the request context. A missing or malformed header yields a bare 401; a
// failed verification yields 401 with a structured error body.
func Gate(engine *authgate.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			subject, err := engine.Validate(token)
			if err != nil {
				reject(w)
				return
			}

			ctx := context.WithValue(r.Context(), subjectContextKey{}, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

func reject(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": "Invalid or expired token",
		"success": false,
	})
}

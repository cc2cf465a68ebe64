package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopmateapp/shopmate-server/internal/assistant"
	"github.com/shopmateapp/shopmate-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyCaller contextKey = "caller"

// authenticate is router-wide middleware that attaches the authenticated
// caller to the request context when a valid Bearer token is present.
// It never rejects a request; enforcement happens in requireAuth and in
// the huma handlers that need a caller.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, _, err := s.services.Auth.VerifyAccessToken(r.Context(), token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		caller := assistant.Caller{
			UserID: user.ID,
			Name:   user.DisplayName,
			Role:   user.Role,
			IsRoot: user.IsRoot,
		}
		ctx := context.WithValue(r.Context(), contextKeyCaller, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth rejects requests that did not authenticate.
// Must be used after authenticate.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := callerFrom(r.Context()); !ok {
			response.Unauthorized(w, "Invalid or missing token", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin rejects authenticated callers without admin privileges.
// Must be used after requireAuth.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFrom(r.Context())
		if !ok || !caller.IsAdmin() {
			response.Forbidden(w, "Admin access required", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// callerFrom extracts the authenticated caller from request context.
func callerFrom(ctx context.Context) (assistant.Caller, bool) {
	caller, ok := ctx.Value(contextKeyCaller).(assistant.Caller)
	return caller, ok
}

// bearerToken extracts the token from the Authorization header.
// Returns empty string when the header is missing or malformed.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dom/league-matchmaker/internal/service"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	SubjectKey contextKey = "subject"
)

// Auth requires a valid bearer token when the auth service is enabled. The
// token may also be passed as ?token= for clients that cannot set headers.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			log := zerolog.Ctx(r.Context())

			token := r.URL.Query().Get("token")
			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) != 2 || parts[0] != "Bearer" {
					log.Warn().Str("middleware", "Auth").Msg("invalid authorization header format")
					writeError(w, http.StatusUnauthorized, "Invalid authorization header")
					return
				}
				token = parts[1]
			}
			if token == "" {
				log.Warn().Str("middleware", "Auth").Msg("missing token")
				writeError(w, http.StatusUnauthorized, "Authorization required")
				return
			}

			subject, err := authService.ValidateToken(token)
			if err != nil {
				log.Warn().Err(err).Str("middleware", "Auth").Msg("token validation failed")
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject returns the authenticated subject, if any
func GetSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

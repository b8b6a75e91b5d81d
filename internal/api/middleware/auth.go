package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dom/studio-api/internal/api/respond"
	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/service"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const adminKey contextKey = "admin"

// Authenticator resolves a bearer token to the admin it was issued for
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Admin, error)
}

var _ Authenticator = (*service.AuthService)(nil)

// Auth rejects requests without a valid bearer token for an existing admin
func Auth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.WithFields(log.Fields{"method": r.Method, "path": r.URL.Path})

			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" || strings.EqualFold(header, "bearer") {
				logger.Warn("auth rejected: no token")
				respond.Error(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			scheme, tokenString, found := strings.Cut(header, " ")
			tokenString = strings.TrimSpace(tokenString)
			if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				logger.Warn("auth rejected: malformed authorization header")
				respond.Error(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			admin, err := auth.Authenticate(r.Context(), tokenString)
			if err != nil {
				if respond.IsAuthFailure(err) {
					logger.WithField("reason", err.Error()).Warn("auth rejected")
					respond.Error(w, http.StatusUnauthorized, "Token is not valid")
					return
				}
				respond.Err(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
		})
	}
}

// AdminFromContext returns the admin attached by Auth
func AdminFromContext(ctx context.Context) (*domain.Admin, bool) {
	admin, ok := ctx.Value(adminKey).(*domain.Admin)
	return admin, ok
}

// WithAdmin attaches admin to ctx the same way Auth does
func WithAdmin(ctx context.Context, admin *domain.Admin) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

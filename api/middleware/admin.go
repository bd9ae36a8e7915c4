package middleware

import (
	"context"
	"net/http"

	"github.com/jhonvillanueva44/mammapizza-api/api/responses"
	"github.com/jhonvillanueva44/mammapizza-api/internal/adminauth"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/config"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

// SessionVerifier resolves an admin session token to its identity.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*adminauth.Session, error)
}

// AdminGuard rejects back-office requests without a live admin session.
func AdminGuard(cfg config.AdminConfig, verifier SessionVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				token = cookie.Value
			}

			session, err := verifier.Verify(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithAdmin(r.Context(), session.Token, session.Nombre)
			if logg != nil {
				ctx = logg.WithAdmin(ctx, session.Nombre)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

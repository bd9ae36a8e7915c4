package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/jhonvillanueva44/mammapizza-api/api/middleware"
	"github.com/jhonvillanueva44/mammapizza-api/api/responses"
	"github.com/jhonvillanueva44/mammapizza-api/api/validators"
	"github.com/jhonvillanueva44/mammapizza-api/internal/adminauth"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/config"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

// AdminAuthService is the back-office login surface.
type AdminAuthService interface {
	Login(ctx context.Context, creds adminauth.Credentials) (*adminauth.Session, error)
	Logout(ctx context.Context, token string) error
}

// AdminLogin exchanges credentials for an admin session cookie.
func AdminLogin(svc AdminAuthService, cfg config.AdminConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds adminauth.Credentials
		if err := validators.DecodeJSONBody(r, &creds); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Login(r.Context(), creds)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    session.Token,
			Path:     "/",
			Expires:  time.Now().Add(cfg.SessionTTL),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		responses.WriteSuccess(w, session)
	}
}

// AdminLogout drops the session and expires the cookie.
func AdminLogout(svc AdminAuthService, cfg config.AdminConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(cfg.CookieName); err == nil {
			token = cookie.Value
		}
		if err := svc.Logout(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AdminSession returns the authenticated admin's display name. It runs
// behind the admin guard, so the context always carries the identity.
func AdminSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"nombre": middleware.AdminNameFromContext(r.Context())})
	}
}

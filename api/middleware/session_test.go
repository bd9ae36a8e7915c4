package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jhonvillanueva44/mammapizza-api/internal/adminauth"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/config"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func cartConfig() config.CartConfig {
	return config.CartConfig{TTL: time.Hour, CookieName: "mp_session"}
}

func TestCartSessionMintsCookieOnFirstContact(t *testing.T) {
	var seen string
	handler := CartSession(cartConfig(), testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/carrito", nil))

	require.NotEmpty(t, seen)
	cookies := resp.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "mp_session", cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestCartSessionReusesCookie(t *testing.T) {
	var seen string
	handler := CartSession(cartConfig(), testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/carrito", nil)
	req.AddCookie(&http.Cookie{Name: "mp_session", Value: "existing"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, "existing", seen)
	assert.Empty(t, resp.Result().Cookies())
}

type verifierStub struct {
	valid string
}

func (v verifierStub) Verify(ctx context.Context, token string) (*adminauth.Session, error) {
	if token != v.valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin session expired")
	}
	return &adminauth.Session{Token: token, Nombre: "Maria"}, nil
}

func TestAdminGuardRejectsMissingSession(t *testing.T) {
	called := false
	handler := AdminGuard(config.AdminConfig{CookieName: "mp_admin"}, verifierStub{valid: "tok"}, testLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/admin/categorias", nil))

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.False(t, called)
}

func TestAdminGuardInjectsIdentity(t *testing.T) {
	var name, token string
	handler := AdminGuard(config.AdminConfig{CookieName: "mp_admin"}, verifierStub{valid: "tok"}, testLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name = AdminNameFromContext(r.Context())
			token = AdminTokenFromContext(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/categorias", nil)
	req.AddCookie(&http.Cookie{Name: "mp_admin", Value: "tok"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Maria", name)
	assert.Equal(t, "tok", token)
}

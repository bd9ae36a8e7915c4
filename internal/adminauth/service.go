package adminauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/redis"
)

// UserSource lists the back-office users from the catalog backend. The
// backend exposes them in plain text and the credential match happens
// here; there is no token exchange with the backend.
type UserSource interface {
	Users(ctx context.Context) ([]catalog.User, error)
}

// SessionStore persists admin session markers keyed by opaque token.
type SessionStore interface {
	Put(ctx context.Context, token, name string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// ErrNoSession is returned when a token is unknown or expired.
var ErrNoSession = errors.New("admin session not found")

// RedisSessions stores each session as token -> display name.
type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

func (s *RedisSessions) Put(ctx context.Context, token, name string, ttl time.Duration) error {
	return s.client.Set(ctx, s.client.AdminSessionKey(token), name, ttl)
}

func (s *RedisSessions) Get(ctx context.Context, token string) (string, error) {
	name, err := s.client.Get(ctx, s.client.AdminSessionKey(token))
	if errors.Is(err, redis.ErrNotFound) {
		return "", ErrNoSession
	}
	return name, err
}

func (s *RedisSessions) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.client.AdminSessionKey(token))
}

// Service authenticates back-office users against the catalog's user
// list and keeps their sessions in Redis.
type Service struct {
	users    UserSource
	sessions SessionStore
	ttl      time.Duration
	logger   *logger.Logger
}

func NewService(users UserSource, sessions SessionStore, ttl time.Duration, logg *logger.Logger) *Service {
	return &Service{users: users, sessions: sessions, ttl: ttl, logger: logg}
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is an authenticated back-office session.
type Session struct {
	Token  string `json:"-"`
	Nombre string `json:"nombre"`
}

// AdminRole is the only role the back-office admits.
const AdminRole = "admin"

// Login matches the credentials against the catalog user list and mints
// a session token. Email comparison is case-insensitive; the password
// match is exact. Matching users without the admin role are rejected.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	users, err := s.users.Users(ctx)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if strings.ToLower(user.Email) != email || user.Password != creds.Password {
			continue
		}
		if !strings.EqualFold(user.Rol, AdminRole) {
			ctx = s.logger.WithField(ctx, "rol", user.Rol)
			s.logger.Warn(ctx, "login rejected for non-admin user")
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "only administrators may sign in")
		}
		token := uuid.NewString()
		if err := s.sessions.Put(ctx, token, user.Nombre, s.ttl); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing admin session")
		}
		ctx = s.logger.WithAdmin(ctx, user.Nombre)
		s.logger.Info(ctx, "admin logged in")
		return &Session{Token: token, Nombre: user.Nombre}, nil
	}

	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

// Verify resolves a session token to its display name.
func (s *Service) Verify(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing admin session")
	}
	name, err := s.sessions.Get(ctx, token)
	if errors.Is(err, ErrNoSession) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin session expired")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading admin session")
	}
	return &Session{Token: token, Nombre: name}, nil
}

// Logout drops the session. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting admin session")
	}
	return nil
}

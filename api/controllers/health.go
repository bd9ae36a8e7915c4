package controllers

import (
	"context"
	"net/http"

	"github.com/jhonvillanueva44/mammapizza-api/api/responses"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/config"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

const envHeader = "X-MammaPizza-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// Pinger is anything that answers a connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthReady verifies the session store before reporting ready. The
// catalog backend is deliberately left out: its outages surface per
// request as dependency errors, not as readiness failures.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "session store unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

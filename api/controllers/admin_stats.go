package controllers

import (
	"net/http"

	"github.com/jhonvillanueva44/mammapizza-api/api/responses"
	adminsvc "github.com/jhonvillanueva44/mammapizza-api/internal/admin"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

// AdminStats proxies the dashboard aggregation from the catalog backend.
func AdminStats(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

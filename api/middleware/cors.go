package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/config"
)

// CORS applies the storefront origin policy. Origins come from config so
// each deployment lists its own frontend hosts.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

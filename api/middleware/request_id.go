package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

// The storefront's fetch wrapper echoes this header back when it reports
// a failed request, so an inbound id is honored when it looks sane.
const requestIDHeader = "X-Request-Id"

const maxRequestIDLength = 64

func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if reqID == "" || len(reqID) > maxRequestIDLength {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is implemented by the dependencies health reports on.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health returns API health status for FE/load balancer checks. With a
// database attached it also reports whether the database answers.
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "up"}
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				status["status"] = "down"
				status["database"] = "unreachable"
				SendSuccess(w, http.StatusServiceUnavailable, "degraded", status)
				return
			}
			status["database"] = "up"
		}
		SendSuccess(w, http.StatusOK, "ok", status)
	}
}

// APIDocs serves a pre-rendered OpenAPI document.
func APIDocs(doc []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc)
	}
}

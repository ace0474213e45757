package handlers

import (
	"context"
	"net/http"

	"github.com/easeaico/zetazen/internal/safety"
)

// Resources returns the crisis support contacts and grounding steps.
// GET /api/resources
func Resources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, safety.DefaultResources())
}

// Pinger checks a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports liveness and database reachability.
// GET /health
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

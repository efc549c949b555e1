package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/logger"
)

const readyzTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Store string `json:"store"`
	Error string `json:"error,omitempty"`
}

// Readyz pings the storage backend. Without a backend the server has nothing
// to wait for and is ready.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		backend := d.Store.Backend()
		if backend == nil {
			writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Store: "none"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
		defer cancel()

		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed",
				logger.String("store", backend.Name()),
				logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Store: backend.Name(), Error: msgUnavailable})
			return
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Store: backend.Name()})
	}
}

package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
)

type healthResponse struct {
	OK           bool `json:"ok"`
	DBConfigured bool `json:"dbConfigured"`
}

// Health always answers 200 and reports whether a store is attached.
func Health(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			OK:           true,
			DBConfigured: d.Store.Configured(),
		})
	}
}

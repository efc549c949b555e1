package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/logger"
)

// maxBodyBytes bounds request bodies; pasted text can be large.
const maxBodyBytes = 4 << 20

const (
	msgInvalidPayload = "Invalid payload"
	msgNotFound       = "Not found"
	msgNotConfigured  = "Database is not configured. Set LINKBATCH_REDIS_ADDR or LINKBATCH_DATABASE_URL (or LINKBATCH_STORE=memory) in the service environment."
	msgUnavailable    = "Storage backend is unavailable"
	msgInternal       = "Internal server error"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStoreError maps a store error to its HTTP status and message.
func writeStoreError(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPayload):
		writeError(w, http.StatusBadRequest, msgInvalidPayload)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, domain.ErrServiceUnavailable):
		if !d.Store.Configured() {
			writeError(w, http.StatusServiceUnavailable, msgNotConfigured)
			return
		}
		d.Logger.Error("storage backend failure",
			logger.String("path", r.URL.Path),
			logger.Error(err))
		writeError(w, http.StatusServiceUnavailable, msgUnavailable)
	default:
		d.Logger.Error("unexpected handler error",
			logger.String("path", r.URL.Path),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeBody reads a JSON body into dst. Malformed JSON leaves dst as the
// zero payload; validation then rejects it.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, dst)
}

// valid reports whether payload satisfies its validate tags.
func valid(payload any) bool {
	return validate.Struct(payload) == nil
}

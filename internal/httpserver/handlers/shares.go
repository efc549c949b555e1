package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/logger"
)

type createShareRequest struct {
	URLs domain.StringList `json:"urls" validate:"required,min=1"`
}

type createShareResponse struct {
	ID string `json:"id"`
}

type shareResponse struct {
	URLs []string `json:"urls"`
}

func CreateShare(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Store.Configured() {
			writeStoreError(w, r, d, domain.ErrServiceUnavailable)
			return
		}

		var req createShareRequest
		decodeBody(w, r, &req)
		if !valid(req) {
			writeError(w, http.StatusBadRequest, msgInvalidPayload)
			return
		}

		id, err := d.Store.CreateShare(r.Context(), req.URLs)
		if err != nil {
			writeStoreError(w, r, d, err)
			return
		}

		d.Logger.Debug("share created",
			logger.String("id", id),
			logger.Int("url_count", len(req.URLs)))
		writeJSON(w, http.StatusOK, createShareResponse{ID: id})
	}
}

func ResolveShare(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urls, err := d.Store.ResolveShare(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, shareResponse{URLs: urls})
	}
}

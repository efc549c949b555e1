package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/logger"
)

type saveHistoryRequest struct {
	URLs     domain.StringList `json:"urls" validate:"required,min=1"`
	FullText string            `json:"fullText" validate:"required"`
}

type historyListResponse struct {
	History []domain.HistoryItem `json:"history"`
}

type historyItemResponse struct {
	Item domain.HistoryItem `json:"item"`
}

func ListHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := d.Store.ListHistory(r.Context())
		if err != nil {
			writeStoreError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, historyListResponse{History: items})
	}
}

func SaveHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Store.Configured() {
			writeStoreError(w, r, d, domain.ErrServiceUnavailable)
			return
		}

		var req saveHistoryRequest
		decodeBody(w, r, &req)
		if !valid(req) {
			writeError(w, http.StatusBadRequest, msgInvalidPayload)
			return
		}

		item, err := d.Store.AppendHistory(r.Context(), req.URLs, req.FullText)
		if err != nil {
			writeStoreError(w, r, d, err)
			return
		}

		d.Logger.Debug("history item saved",
			logger.String("id", item.ID),
			logger.Int("url_count", item.URLCount))
		writeJSON(w, http.StatusOK, historyItemResponse{Item: item})
	}
}

func ClearHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.ClearHistory(r.Context()); err != nil {
			writeStoreError(w, r, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerHistory) }

func registerHistory(r chi.Router, d deps.Deps) {
	r.Get("/history", handlers.ListHistory(d))
	r.Post("/history", handlers.SaveHistory(d))
	r.Delete("/history", handlers.ClearHistory(d))
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerHealth) }

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/health", handlers.Health(d))
}

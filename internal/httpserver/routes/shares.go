package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerShares) }

func registerShares(r chi.Router, d deps.Deps) {
	r.Post("/shares", handlers.CreateShare(d))
	r.Get("/shares/{id}", handlers.ResolveShare(d))
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/handlers"
)

func init() { Register(registerStatic) }

// registerStatic catches every GET the other routes do not claim.
func registerStatic(r chi.Router, d deps.Deps) {
	r.Get("/*", handlers.Static(d))
}

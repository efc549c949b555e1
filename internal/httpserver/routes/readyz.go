package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/mw"
)

func init() { Register(registerProbes) }

func registerProbes(r chi.Router, d deps.Deps) {
	ops := r.With(mw.RestrictTo(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	ops.Get("/healthz", handlers.Healthz(d))
	ops.Get("/readyz", handlers.Readyz(d))
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/mw"
)

func init() { Register(registerMetrics) }

func registerMetrics(r chi.Router, d deps.Deps) {
	if d.Metrics == nil {
		return
	}
	r.With(mw.RestrictTo(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Method("GET", "/metrics", d.Metrics.Handler())
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg Registrar
	mws []Middleware
}

var (
	registry    []entry // mounted at the root
	apiRegistry []entry // mounted under /api
)

// Register a root registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterAPI registers a registrar mounted under /api.
func RegisterAPI(reg Registrar, mws ...Middleware) {
	apiRegistry = append(apiRegistry, entry{reg: reg, mws: mws})
}

// Called once from server.New(). apiMws wrap the whole /api group,
// preflight requests included.
func RegisterAll(r chi.Router, d deps.Deps, apiMws ...Middleware) {
	r.Route("/api", func(api chi.Router) {
		api.Use(apiMws...)
		mount(api, apiRegistry, d)
	})
	mount(r, registry, d)
}

func mount(r chi.Router, entries []entry, d deps.Deps) {
	for _, e := range entries {
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		sub := r.With(e.mws...) // apply per-route middlewares
		e.reg(sub, d)
	}
}

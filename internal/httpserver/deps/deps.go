package deps

import (
	"time"

	"github.com/MrSnakeDoc/linkbatch/internal/logger"
	"github.com/MrSnakeDoc/linkbatch/internal/metrics"
	"github.com/MrSnakeDoc/linkbatch/internal/store"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	Store        *store.Service    // never nil; unconfigured when no backend is set
	Metrics      *metrics.Recorder // nil disables /metrics and request metrics
	StaticDir    string            // front-end bundle served at /
	CORSOrigins  []string          // origins allowed on /api/*
	AllowedCIDRS []string          // IPs allowed to access healthz/readyz/metrics endpoints
	TrustProxy   bool              // true if running behind a trusted reverse proxy (e.g., cloudflared)
}

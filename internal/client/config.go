package client

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config drives the command-line client.
type Config struct {
	APIBase           string        `env:"LINKBATCH_API_BASE" envDefault:"http://localhost:8787"`
	Timeout           time.Duration `env:"LINKBATCH_CLIENT_TIMEOUT" envDefault:"10s"`
	OpenInterval      time.Duration `env:"LINKBATCH_OPEN_INTERVAL" envDefault:"1s"`
	ThrottleThreshold int           `env:"LINKBATCH_THROTTLE_THRESHOLD" envDefault:"10"`
	LogLevel          string        `env:"LINKBATCH_LOG_LEVEL" envDefault:"warn"`
	PrettyLog         bool          `env:"LINKBATCH_PRETTY_LOG" envDefault:"true"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

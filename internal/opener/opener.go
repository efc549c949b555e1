// Package opener opens batches of URLs in the user's browser, either all at
// once or one at a time with a fixed pause between opens.
package opener

import (
	"context"
	"time"

	"github.com/pkg/browser"
	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/linkbatch/internal/logger"
)

const (
	// DefaultInterval is the pause between two throttled opens.
	DefaultInterval = time.Second
	// DefaultThreshold is the batch size above which throttling is suggested.
	DefaultThreshold = 10
)

// Launcher opens one URL.
type Launcher interface {
	Open(url string) error
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(url string) error

func (f LauncherFunc) Open(url string) error { return f(url) }

// BrowserLauncher opens URLs with the system browser.
type BrowserLauncher struct{}

func (BrowserLauncher) Open(url string) error { return browser.OpenURL(url) }

// Pacer blocks until the next open may happen.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer allows one open immediately, then one per interval.
func NewPacer(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Result summarizes a batch. Failures are only reported in aggregate.
type Result struct {
	Total   int  `json:"total"`
	Opened  int  `json:"opened"`
	Blocked int  `json:"blocked"`
	Aborted bool `json:"aborted"`
}

// Opener opens URL batches through a Launcher.
type Opener struct {
	launcher Launcher
	pacer    Pacer
	logger   logger.Logger
}

// New builds an Opener. A nil launcher uses the system browser and a nil
// pacer waits DefaultInterval between throttled opens.
func New(launcher Launcher, pacer Pacer, log logger.Logger) *Opener {
	if launcher == nil {
		launcher = BrowserLauncher{}
	}
	if pacer == nil {
		pacer = NewPacer(DefaultInterval)
	}
	return &Opener{launcher: launcher, pacer: pacer, logger: log}
}

// ShouldThrottle reports whether opening n URLs at once should be throttled.
func ShouldThrottle(n, threshold int) bool {
	return n > threshold
}

// Instant opens every URL without pausing.
func (o *Opener) Instant(urls []string) Result {
	res := Result{Total: len(urls)}
	for _, u := range urls {
		o.open(u, &res)
	}
	o.logResult("instant", res)
	return res
}

// Throttled opens URLs sequentially, pausing between opens. Cancelling ctx
// stops the batch before the next open; already opened URLs stay open.
func (o *Opener) Throttled(ctx context.Context, urls []string) Result {
	res := Result{Total: len(urls)}
	for _, u := range urls {
		if ctx.Err() != nil {
			res.Aborted = true
			break
		}
		if err := o.pacer.Wait(ctx); err != nil {
			res.Aborted = true
			break
		}
		o.open(u, &res)
	}
	o.logResult("throttled", res)
	return res
}

func (o *Opener) open(u string, res *Result) {
	if err := o.launcher.Open(u); err != nil {
		res.Blocked++
		o.logger.Debug("open failed", logger.String("url", u), logger.Error(err))
		return
	}
	res.Opened++
}

func (o *Opener) logResult(mode string, res Result) {
	o.logger.Info("batch opened",
		logger.String("mode", mode),
		logger.Int("total", res.Total),
		logger.Int("opened", res.Opened),
		logger.Int("blocked", res.Blocked),
		logger.Bool("aborted", res.Aborted))
}

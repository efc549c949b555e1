// Package sharelink finds share payloads in page links and resolves them to
// URL lists, asking the server first and the local codec second.
package sharelink

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/linkbatch/internal/logger"
	"github.com/MrSnakeDoc/linkbatch/internal/sharecodec"
)

// ParamName is the query/fragment key carrying a share id or token.
const ParamName = "share"

// Param returns the share value of link: the query parameter wins over a
// share key inside the fragment.
func Param(link string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", false
	}

	if v := u.Query().Get(ParamName); v != "" {
		return v, true
	}

	fragment := strings.TrimPrefix(u.EscapedFragment(), "#")
	if fragment == "" {
		return "", false
	}
	values, err := url.ParseQuery(fragment)
	if err != nil {
		return "", false
	}
	if v := values.Get(ParamName); v != "" {
		return v, true
	}
	return "", false
}

// Build returns base with the share query parameter set to value.
func Build(base, value string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	q := u.Query()
	q.Set(ParamName, value)
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String(), nil
}

// Resolver looks up a server-side share.
type Resolver interface {
	ResolveShare(ctx context.Context, id string) ([]string, error)
}

// Loader resolves share values to URL lists.
type Loader struct {
	resolver Resolver
	logger   logger.Logger
}

// NewLoader builds a loader; resolver may be nil for offline use.
func NewLoader(resolver Resolver, log logger.Logger) *Loader {
	return &Loader{resolver: resolver, logger: log}
}

// Load returns the URLs behind value, or an empty list. A server miss or
// failure falls back to decoding value as a self-contained token.
func (l *Loader) Load(ctx context.Context, value string) []string {
	if value == "" {
		return []string{}
	}

	if l.resolver != nil {
		urls, err := l.resolver.ResolveShare(ctx, value)
		switch {
		case err != nil:
			l.logger.Debug("share lookup failed, trying local decode",
				logger.String("share", value),
				logger.Error(err))
		case len(urls) > 0:
			return urls
		}
	}

	return sharecodec.Decode(value)
}

// LoadLink extracts the share value from link and loads it.
func (l *Loader) LoadLink(ctx context.Context, link string) []string {
	value, ok := Param(link)
	if !ok {
		return []string{}
	}
	return l.Load(ctx, value)
}

// Package client talks to the linkbatch HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed: %d (%s)", e.Code, e.Message)
	}
	return fmt.Sprintf("request failed: %d", e.Code)
}

// Health is the body of GET /api/health.
type Health struct {
	OK           bool `json:"ok"`
	DBConfigured bool `json:"dbConfigured"`
}

type errorBody struct {
	Error string `json:"error"`
}

type historyList struct {
	History []domain.HistoryItem `json:"history"`
}

type historyCreated struct {
	Item domain.HistoryItem `json:"item"`
}

type shareCreated struct {
	ID string `json:"id"`
}

type shareResolved struct {
	URLs domain.StringList `json:"urls"`
}

// Client is safe for concurrent use.
type Client struct {
	http *resty.Client
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// NewFromConfig builds a client from the environment-backed config.
func NewFromConfig(cfg *Config) *Client {
	return New(cfg.APIBase, cfg.Timeout)
}

// Health never fails on the server side; an error here means the API is
// unreachable.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return Health{}, err
	}
	return out, nil
}

// History lists saved batches, newest first.
func (c *Client) History(ctx context.Context) ([]domain.HistoryItem, error) {
	var out historyList
	if err := c.do(ctx, http.MethodGet, "/api/history", nil, &out); err != nil {
		return nil, err
	}
	if out.History == nil {
		return []domain.HistoryItem{}, nil
	}
	return out.History, nil
}

// SaveHistory records a batch and returns the stored item.
func (c *Client) SaveHistory(ctx context.Context, urls []string, fullText string) (domain.HistoryItem, error) {
	body := map[string]any{"urls": urls, "fullText": fullText}
	var out historyCreated
	if err := c.do(ctx, http.MethodPost, "/api/history", body, &out); err != nil {
		return domain.HistoryItem{}, err
	}
	return out.Item, nil
}

// ClearHistory removes every history entry.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/history", nil, nil)
}

// CreateShare stores urls server-side and returns the share id.
func (c *Client) CreateShare(ctx context.Context, urls []string) (string, error) {
	body := map[string]any{"urls": urls}
	var out shareCreated
	if err := c.do(ctx, http.MethodPost, "/api/shares", body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// ResolveShare returns the URLs of share id. Any non-2xx answer yields an
// empty list and no error; only transport failures are reported.
func (c *Client) ResolveShare(ctx context.Context, id string) ([]string, error) {
	var out shareResolved
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/shares/" + url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if resp.IsError() || out.URLs == nil {
		return []string{}, nil
	}
	return out.URLs, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var apiErr errorBody
	req := c.http.R().
		SetContext(ctx).
		SetError(&apiErr)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &StatusError{Code: resp.StatusCode(), Message: apiErr.Error}
	}
	return nil
}

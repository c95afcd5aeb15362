package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Yeong-ho/jeju-onul-api/internal/metrics"
	"golang.org/x/time/rate"
)

// ErrUpstreamStatus is wrapped into any error returned because the solver
// collaborator responded with a non-200 status.
var ErrUpstreamStatus = errors.New("solver: unexpected upstream status")

// Config holds solver client configuration.
type Config struct {
	BaseURL   string
	RateLimit float64
	Burst     int
}

// Client wraps the VRP solver collaborator HTTP endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new solver client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("solver: base URL is required")
	}

	rl := cfg.RateLimit
	if rl <= 0 {
		rl = 10.0
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 20
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rl), burst),
	}, nil
}

// Solve POSTs a VRP request to the solver collaborator and returns its
// assignment. A non-200 response is always a fatal error: this caller has
// no fallback when the solver itself cannot be reached or rejects the
// request.
func (c *Client) Solve(ctx context.Context, req Request) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("solver: rate limit wait: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("solver: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("solver: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	metrics.SolverRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("solver: request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.SolverRequestsTotal.WithLabelValues(fmt.Sprint(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("solver: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstreamStatus, resp.StatusCode, string(respBody))
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("solver: decode response: %w", err)
	}

	return &out, nil
}

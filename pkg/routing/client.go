package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Yeong-ho/jeju-onul-api/internal/metrics"
	"github.com/Yeong-ho/jeju-onul-api/internal/models"
	"golang.org/x/time/rate"
)

// fixedQuery are the query parameters every request carries, verbatim
// from the routing collaborator's deployment contract. overview=false
// means the response never carries a geometry, so geometries=polyline is
// inert; it is kept because the collaborator expects it on every call.
const fixedQuery = "geometries=polyline&overview=false&generate_hints=false&continue_straight=false"

// Config holds one base URL per routing profile.
type Config struct {
	BaseURLs  map[models.Profile]string
	RateLimit float64
	Burst     int
}

// Client wraps the routing/ETA collaborator HTTP endpoint.
type Client struct {
	baseURLs map[models.Profile]string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a new routing client.
func NewClient(cfg Config) (*Client, error) {
	if len(cfg.BaseURLs) == 0 {
		return nil, fmt.Errorf("routing: at least one profile base URL is required")
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
		baseURLs: cfg.BaseURLs,
		http:     &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(rl), burst),
	}, nil
}

// Routes requests leg-by-leg duration/distance for an ordered sequence of
// locations under the given profile. A non-200 upstream response is not an
// error: it returns (nil, nil) so the caller can skip enrichment for this
// vehicle's route and leave its legs at zero, per the routing collaborator's
// best-effort contract.
func (c *Client) Routes(ctx context.Context, profile models.Profile, locations []models.Coordinate) (*Response, error) {
	base, ok := c.baseURLs[profile]
	if !ok {
		return nil, fmt.Errorf("routing: no base URL configured for profile %q", profile)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("routing: rate limit wait: %w", err)
	}

	coords := make([]string, len(locations))
	for i, loc := range locations {
		coords[i] = fmt.Sprintf("%g,%g", loc[0], loc[1])
	}

	// The path segment is always "route/v1/car" regardless of profile; the
	// profile only selects which base URL to hit.
	url := fmt.Sprintf("%s/route/v1/car/%s?%s", base, strings.Join(coords, ";"), fixedQuery)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("routing: build request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("routing: request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.RoutingRequestsTotal.WithLabelValues(fmt.Sprint(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("routing: read response: %w", err)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("routing: decode response: %w", err)
	}

	return &out, nil
}

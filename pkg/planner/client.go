package planner

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
)

// Client is an HTTP client for the planner API.
type Client struct {
	baseURL  string
	timezone string
	http     *http.Client
}

// NewClient creates a new planner API client.
//
// Options:
//   - WithHost: sets the server host (default: localhost)
//   - WithPort: sets the server port (default: 7480)
//   - WithTimezone: sets the zone dates are interpreted in
//   - WithTimeout: sets the HTTP client timeout (default: 30s)
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if cfg.port < 1 || cfg.port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", cfg.port)
	}

	return &Client{
		baseURL:  "http://" + net.JoinHostPort(cfg.host, strconv.Itoa(cfg.port)),
		timezone: cfg.timezone,
		http: &http.Client{
			Timeout: cfg.timeout,
		},
	}, nil
}

// Health checks if the server is healthy and returns the planner it serves.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/health", nil)
	if err != nil {
		return "", err
	}

	var body struct {
		Status  string `json:"status"`
		Planner string `json:"planner"`
	}
	if err := c.do(req, http.StatusOK, &body, "health check"); err != nil {
		if IsServerNotRunning(err) {
			return "", err
		}
		return "", ErrServerUnhealthy
	}
	if body.Status != "ok" {
		return "", ErrServerUnhealthy
	}
	return body.Planner, nil
}

// ListPlanners returns the names of all planners in the server's data
// directory.
func (c *Client) ListPlanners(ctx context.Context) ([]string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/planners", nil)
	if err != nil {
		return nil, err
	}

	var planners []string
	if err := c.do(req, http.StatusOK, &planners, "list planners"); err != nil {
		return nil, err
	}
	return planners, nil
}

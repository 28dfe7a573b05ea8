// Package youtube is a typed read-only client for the subset of the
// YouTube Data API v3 that channel mirroring needs: one channel lookup,
// one playlist lookup, and paginated listings of a channel's playlists
// and a playlist's items.
package youtube

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// Pagination limits. maxResults is the API's page size ceiling. maxCalls
// bounds how many pages a single listing will fetch — it guarantees
// termination even against an endpoint returning an endless token chain.
const (
	maxResults = 50
	maxCalls   = 100
)

// requestsPerSecond paces outgoing API calls. The Data API has a daily
// quota, not a strict rate limit; pacing keeps bursts polite.
const requestsPerSecond = 10

// Client wraps the generated YouTube Data API service with pacing,
// logging, and normalization to the package's typed records.
type Client struct {
	service *yt.Service
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a Client authenticated by API key. Extra options are
// appended after the key so tests can redirect the endpoint with
// option.WithEndpoint.
func New(ctx context.Context, apiKey string, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube: api key required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	svcOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	service, err := yt.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("youtube: creating service: %w", err)
	}

	return &Client{
		service: service,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger,
	}, nil
}

// wait blocks until the pacing limiter admits another API call.
func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("youtube: request canceled: %w", err)
	}

	return nil
}

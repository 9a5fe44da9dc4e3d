// Package routing resolves road distances through a remote routing service.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/freightdesk/internal/pricing"
)

const (
	maxAttempts       = 4
	initialBackoff    = 200 * time.Millisecond
	defaultRetryAfter = 5 * time.Second
)

// TooManyRequestsError represents rate limiting signal from the routing service.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("routing error: status %d: %s", e.Code, e.Body)
}

// HTTPClient implements pricing.DistanceSource via the routing HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	backoff    time.Duration
}

type response struct {
	DistanceKM float64 `json:"distance_km"`
}

// NewHTTPClient creates routing client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse routing url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("routing url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		backoff: initialBackoff,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (c *HTTPClient) Name() string { return "routing" }

// Lookup returns the road distance in whole kilometres.
// Unknown routes yield pricing.ErrRouteNotFound and rate limiting yields TooManyRequestsError.
func (c *HTTPClient) Lookup(ctx context.Context, origin, destination string) (int, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/distance")
	endpoint.RawQuery = url.Values{
		"origin":      []string{strings.TrimSpace(origin)},
		"destination": []string{strings.TrimSpace(destination)},
	}.Encode()

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var data response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, fmt.Errorf("decode routing response: %w", err)
	}
	if data.DistanceKM <= 0 {
		return 0, pricing.ErrRouteNotFound
	}
	return int(data.DistanceKM + 0.5), nil
}

// doWithRetry retries network errors and 5xx responses with exponential backoff.
func (c *HTTPClient) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	backoff := c.backoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == maxAttempts {
			break
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	var se *statusError
	if errors.As(lastErr, &se) {
		c.logger.Error("routing request failed", slog.Int("status", se.Code), slog.String("body", se.Body))
	}
	return nil, lastErr
}

func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp, nil
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusNoContent:
		resp.Body.Close()
		return nil, pricing.ErrRouteNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		return nil, &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.Code >= http.StatusInternalServerError
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return defaultRetryAfter
}

var _ pricing.DistanceSource = (*HTTPClient)(nil)

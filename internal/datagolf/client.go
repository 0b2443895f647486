package datagolf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds every feed request. The cron pass runs on a tight
	// schedule; a hung feed call must not stall the whole scoring tick.
	DefaultTimeout = 10 * time.Second
)

// Client defines the interface for interacting with the golf-stats feed.
// Handlers depend on this interface, not on HTTPClient, so tests can swap in
// a stub with canned responses.
type Client interface {
	// GetSchedule returns the season schedule for a tour ("pga" for us).
	GetSchedule(ctx context.Context, tour string) (*Schedule, error)
	// GetFieldUpdate returns the confirmed field for the current event.
	GetFieldUpdate(ctx context.Context, tour string) (*FieldUpdate, error)
	// GetLiveStats returns live in-play lines for every golfer in the
	// current event.
	GetLiveStats(ctx context.Context, tour string) (*LiveStats, error)
}

// HTTPClient implements the Client interface against the real feed.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewHTTPClient creates a feed client. baseURL comes from config so staging
// and tests can point it anywhere.
func NewHTTPClient(baseURL, apiKey string, logger *logrus.Logger) Client {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}
}

// get performs one GET against the feed and decodes the JSON body into result.
// The feed authenticates with a "key" query parameter on every request.
func (c *HTTPClient) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.apiKey)
	params.Set("file_format", "json")
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	c.logger.WithField("endpoint", endpoint).Debug("Making feed request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("Feed request failed")
		return fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).Error("Failed to read feed response body")
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"endpoint":    endpoint,
		}).Error("Feed request rejected")

		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		c.logger.WithError(err).WithField("endpoint", endpoint).Error("Failed to unmarshal feed response")
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// GetSchedule retrieves the season schedule for a tour.
func (c *HTTPClient) GetSchedule(ctx context.Context, tour string) (*Schedule, error) {
	params := url.Values{}
	params.Set("tour", tour)

	var schedule Schedule
	if err := c.get(ctx, "/get-schedule", params, &schedule); err != nil {
		return nil, fmt.Errorf("failed to get schedule for tour %s: %w", tour, err)
	}
	return &schedule, nil
}

// GetFieldUpdate retrieves tee times and withdrawals for the current event.
func (c *HTTPClient) GetFieldUpdate(ctx context.Context, tour string) (*FieldUpdate, error) {
	params := url.Values{}
	params.Set("tour", tour)

	var update FieldUpdate
	if err := c.get(ctx, "/field-updates", params, &update); err != nil {
		return nil, fmt.Errorf("failed to get field update for tour %s: %w", tour, err)
	}
	return &update, nil
}

// GetLiveStats retrieves live in-play lines for the current event.
func (c *HTTPClient) GetLiveStats(ctx context.Context, tour string) (*LiveStats, error) {
	params := url.Values{}
	params.Set("tour", tour)

	var stats LiveStats
	if err := c.get(ctx, "/preds/in-play", params, &stats); err != nil {
		return nil, fmt.Errorf("failed to get live stats for tour %s: %w", tour, err)
	}
	return &stats, nil
}

// Package tfl fetches the London transport network from the TfL Unified
// API. It implements loader.Source: pkg/tube never talks to it directly.
package tfl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tubetrail/tubetrail/internal/models"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the TfL client
type Config struct {
	BaseURL     string
	AppID       string
	AppKey      string
	Mode        string // transport mode, e.g. "tube"
	Timeout     time.Duration
	Concurrency int // parallel StopPoints requests
}

// DefaultConfig returns default configuration.
// Four concurrent requests stays well inside TfL's anonymous rate limits.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.tfl.gov.uk",
		Mode:        "tube",
		Timeout:     30 * time.Second,
		Concurrency: 4,
	}
}

// Client calls the TfL Unified API
type Client struct {
	cfg        Config
	httpClient *http.Client

	// retryDelay paces retries after transient failures; shortened in tests
	retryDelay time.Duration
}

// NewClient creates a TfL client from the given configuration
func NewClient(cfg Config) *Client {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConfig().Concurrency
	}
	if cfg.Mode == "" {
		cfg.Mode = DefaultConfig().Mode
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retryDelay: time.Second,
	}
}

type line struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type stopPoint struct {
	NaptanID   string `json:"naptanId"`
	CommonName string `json:"commonName"`
}

// Network fetches the full station/segment network for the configured mode:
// the line list first, then every line's ordered stop points (concurrently,
// bounded by Concurrency). Assembly is deterministic: segments follow line
// listing order, stations are sorted by ID.
func (c *Client) Network(ctx context.Context) (*models.RawNetwork, error) {
	var lines []line
	if err := c.getJSON(ctx, "/Line/Mode/"+url.PathEscape(c.cfg.Mode), &lines); err != nil {
		return nil, fmt.Errorf("fetching %s lines: %w", c.cfg.Mode, err)
	}

	stopsByLine := make([][]stopPoint, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for i, ln := range lines {
		i, ln := i, ln
		g.Go(func() error {
			var stops []stopPoint
			if err := c.getJSON(gctx, "/Line/"+url.PathEscape(ln.ID)+"/StopPoints", &stops); err != nil {
				return fmt.Errorf("fetching stop points for line %s: %w", ln.ID, err)
			}
			stopsByLine[i] = stops
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return assemble(lines, stopsByLine), nil
}

// stationName strips TfL's station-type suffix from a stop's common name
func stationName(commonName string) string {
	return strings.TrimSuffix(commonName, " Underground Station")
}

func assemble(lines []line, stopsByLine [][]stopPoint) *models.RawNetwork {
	names := make(map[string]string)
	raw := &models.RawNetwork{}

	for i, ln := range lines {
		stops := stopsByLine[i]
		for _, sp := range stops {
			names[sp.NaptanID] = stationName(sp.CommonName)
		}
		// One segment per direction between consecutive stops on the line
		for j := 0; j+1 < len(stops); j++ {
			a, b := stops[j].NaptanID, stops[j+1].NaptanID
			raw.Segments = append(raw.Segments,
				models.RawSegment{Line: ln.Name, From: a, To: b},
				models.RawSegment{Line: ln.Name, From: b, To: a},
			)
		}
	}

	ids := make([]string, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		raw.Stations = append(raw.Stations, models.RawStation{ID: id, Name: names[id]})
	}

	return raw
}

// apiError is the shape TfL uses for error payloads
type apiError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

const maxAttempts = 3

// getJSON performs a GET with credentials and bounded retries. 429 waits
// for the advertised delay (Retry-After header, or the "Try again in N
// seconds" message); 5xx waits a short fixed delay.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, retryIn, err := c.getOnce(ctx, path)
		if err == nil {
			return json.Unmarshal(body, out)
		}
		lastErr = err

		if retryIn < 0 || attempt == maxAttempts-1 {
			break
		}
		select {
		case <-time.After(retryIn):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}

// getOnce returns the response body, or an error plus how long to wait
// before retrying (negative when the failure is not retryable).
func (c *Client) getOnce(ctx context.Context, path string) ([]byte, time.Duration, error) {
	u := c.cfg.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, -1, err
	}
	q := req.URL.Query()
	if c.cfg.AppID != "" {
		q.Set("app_id", c.cfg.AppID)
	}
	if c.cfg.AppKey != "" {
		q.Set("app_key", c.cfg.AppKey)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.retryDelay, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.retryDelay, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, 0, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, c.rateLimitDelay(resp, body), fmt.Errorf("rate limited by %s", req.URL.Host)
	case resp.StatusCode >= 500:
		return nil, c.retryDelay, fmt.Errorf("HTTP %d from %s", resp.StatusCode, req.URL.Host)
	default:
		return nil, -1, fmt.Errorf("HTTP %d from %s", resp.StatusCode, req.URL.Host)
	}
}

func (c *Client) rateLimitDelay(resp *http.Response, body []byte) time.Duration {
	if h := resp.Header.Get("Retry-After"); h != "" {
		if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}

	// TfL spells the delay out in the message: "... Try again in N seconds"
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if _, after, found := strings.Cut(apiErr.Message, "Try again in "); found {
			secsStr, _, _ := strings.Cut(after, " ")
			if secs, err := strconv.Atoi(secsStr); err == nil && secs >= 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}

	return c.retryDelay
}

// Package statcan provides a client for the Statistics Canada Web Data
// Service (WDS) REST API and the assembler that turns its coordinate-based
// queries into a survey snapshot. Queries address individual series by
// product ID plus a ten-position dotted coordinate, so the client never
// downloads full tables.
package statcan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the production WDS REST endpoint.
const DefaultBaseURL = "https://www150.statcan.gc.ca/t1/wds/rest/"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for WDS requests.
const DefaultUserAgent = "career-insights/1.0"

// DefaultMinInterval spaces requests to stay under the WDS limit of 20
// requests per second.
const DefaultMinInterval = 50 * time.Millisecond

// DefaultMaxRetries is how many attempts each POST gets before giving up.
const DefaultMaxRetries = 3

// batchChunkSize caps the number of items per getData POST. The WDS API
// rejects larger payloads.
const batchChunkSize = 100

const latestPeriodsEndpoint = "getDataFromCubePidCoordAndLatestNPeriods"

// Error represents an error from a WDS request.
type Error struct {
	Endpoint string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("statcan error for %s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("statcan error for %s: %s", e.Endpoint, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	UserAgent   string
	MaxRetries  int
	MinInterval time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// DefaultOptions returns sensible defaults for the production API.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxRetries:  DefaultMaxRetries,
		MinInterval: DefaultMinInterval,
	}
}

// Client queries the WDS REST API. It rate-limits and retries transparently
// and is safe for concurrent use.
type Client struct {
	baseURL     string
	userAgent   string
	maxRetries  int
	minInterval time.Duration
	httpClient  *http.Client

	mu       sync.Mutex
	lastPost time.Time
}

// NewClient creates a WDS client. A nil opts uses DefaultOptions.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Client{
		baseURL:     baseURL,
		userAgent:   userAgent,
		maxRetries:  maxRetries,
		minInterval: opts.MinInterval,
		httpClient:  httpClient,
	}
}

// Request addresses one series: a product (table) ID, a ten-position dotted
// coordinate, and how many latest periods to return.
type Request struct {
	ProductID  int    `json:"productId"`
	Coordinate string `json:"coordinate"`
	LatestN    int    `json:"latestN"`
}

// DataPoint is one dated value in a series. Value is nil when StatCan
// suppressed or did not report the period.
type DataPoint struct {
	RefPer string   `json:"refPer"`
	Value  *float64 `json:"value"`
}

// Series is the object the API returns for one successful request item.
type Series struct {
	ProductID  int         `json:"productId"`
	Coordinate string      `json:"coordinate"`
	DataPoints []DataPoint `json:"vectorDataPoint"`
}

// envelope wraps each response item with its status.
type envelope struct {
	Status string  `json:"status"`
	Object *Series `json:"object"`
}

// statusSuccess marks a fulfilled request item.
const statusSuccess = "SUCCESS"

// Coordinate builds a ten-position dotted coordinate, padding with zeros.
func Coordinate(parts ...int) string {
	const positions = 10
	fields := make([]string, positions)
	for i := 0; i < positions; i++ {
		if i < len(parts) {
			fields[i] = strconv.Itoa(parts[i])
		} else {
			fields[i] = "0"
		}
	}
	return strings.Join(fields, ".")
}

// waitTurn blocks until at least minInterval has passed since the previous
// request, honoring context cancellation.
func (c *Client) waitTurn(ctx context.Context) error {
	if c.minInterval <= 0 {
		return ctx.Err()
	}
	c.mu.Lock()
	now := time.Now()
	next := c.lastPost.Add(c.minInterval)
	if next.Before(now) {
		next = now
	}
	c.lastPost = next
	c.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// postWithRetry POSTs a payload to an endpoint, retrying transient failures
// with exponential backoff.
func (c *Client) postWithRetry(ctx context.Context, endpoint string, payload []Request) ([]envelope, error) {
	url := c.baseURL + endpoint
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to encode payload", Cause: err}
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, &Error{Endpoint: endpoint, Message: "request cancelled", Cause: ctx.Err()}
			case <-timer.C:
			}
		}
		if err := c.waitTurn(ctx); err != nil {
			return nil, &Error{Endpoint: endpoint, Message: "request cancelled", Cause: err}
		}

		results, err := c.post(ctx, url, body)
		if err == nil {
			return results, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, &Error{Endpoint: endpoint, Message: "max retries exceeded", Cause: lastErr}
}

func (c *Client) post(ctx context.Context, url string, body []byte) ([]envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var results []envelope
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return results, nil
}

// Query fetches a single series. It returns nil when the API reports the
// request item as unfulfilled.
func (c *Client) Query(ctx context.Context, productID int, coordinate string, latestN int) (*Series, error) {
	results, err := c.postWithRetry(ctx, latestPeriodsEndpoint, []Request{
		{ProductID: productID, Coordinate: coordinate, LatestN: latestN},
	})
	if err != nil {
		return nil, err
	}
	if len(results) > 0 && results[0].Status == statusSuccess && results[0].Object != nil {
		return results[0].Object, nil
	}
	return nil, nil
}

// QueryBatch fetches many series in chunked POSTs and returns a map from
// coordinate to series. The API deduplicates identical coordinates, so a map
// is the natural shape. Failed chunks are skipped rather than failing the
// whole batch; only context cancellation aborts.
func (c *Client) QueryBatch(ctx context.Context, requests []Request) (map[string]*Series, error) {
	coordMap := make(map[string]*Series, len(requests))
	for start := 0; start < len(requests); start += batchChunkSize {
		end := start + batchChunkSize
		if end > len(requests) {
			end = len(requests)
		}
		results, err := c.postWithRetry(ctx, latestPeriodsEndpoint, requests[start:end])
		if err != nil {
			if ctx.Err() != nil {
				return coordMap, err
			}
			continue
		}
		for _, r := range results {
			if r.Status == statusSuccess && r.Object != nil {
				coordMap[r.Object.Coordinate] = r.Object
			}
		}
	}
	return coordMap, nil
}

// GetValue fetches the latest value for one coordinate, or nil when the
// series is missing or suppressed.
func (c *Client) GetValue(ctx context.Context, productID int, coordinate string) (*float64, error) {
	obj, err := c.Query(ctx, productID, coordinate, 1)
	if err != nil {
		return nil, err
	}
	if obj == nil || len(obj.DataPoints) == 0 {
		return nil, nil
	}
	return obj.DataPoints[0].Value, nil
}

// GetTimeSeries fetches up to periods latest observations for one
// coordinate, dropping suppressed values.
func (c *Client) GetTimeSeries(ctx context.Context, productID int, coordinate string, periods int) ([]DataPoint, error) {
	obj, err := c.Query(ctx, productID, coordinate, periods)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	points := make([]DataPoint, 0, len(obj.DataPoints))
	for _, dp := range obj.DataPoints {
		if dp.Value != nil {
			points = append(points, dp)
		}
	}
	return points, nil
}

// Package store is the HTTP client for the storefront's Packeta endpoints.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/packeta/internal/logger"
	"github.com/jask/packeta/internal/pickup"
)

const (
	PickupPointsPath = "/store/packeta/pickup-points"
	SelectPath       = "/store/packeta/select-pickup-point"

	maxErrorBody = 4 << 10
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the store backend.
type Client struct {
	baseURL string
	http    Doer
	log     *logger.Logger
}

// New creates a client for baseURL. A nil doer gets a default http.Client
// and a nil logger discards output.
func New(baseURL string, doer Doer, log *logger.Logger) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 20 * time.Second}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    doer,
		log:     log,
	}
}

// BaseURL returns the normalised backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// SelectRequest is the body of the select-pickup-point call.
type SelectRequest struct {
	CartID             string `json:"cart_id"`
	PickupPointID      string `json:"pickup_point_id"`
	PickupPointName    string `json:"pickup_point_name"`
	PickupPointAddress string `json:"pickup_point_address"`
}

// NewSelectRequest builds the selection payload for point p.
func NewSelectRequest(cartID string, p pickup.Point) SelectRequest {
	return SelectRequest{
		CartID:             cartID,
		PickupPointID:      p.ID,
		PickupPointName:    p.Name,
		PickupPointAddress: p.Address(),
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// ListPickupPoints fetches pickup points, filtered by city when city is not
// blank. A response without a usable pickup_points array yields an empty
// slice and no error.
func (c *Client) ListPickupPoints(ctx context.Context, city string) ([]pickup.Point, error) {
	reqURL := c.baseURL + PickupPointsPath
	if city = strings.TrimSpace(city); city != "" {
		params := url.Values{}
		params.Set("city", city)
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("list pickup points: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list pickup points: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, statusError("list pickup points", resp)
	}

	var body struct {
		PickupPoints json.RawMessage `json:"pickup_points"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("list pickup points: decode response: %w", err)
	}
	raw := bytes.TrimSpace(body.PickupPoints)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []pickup.Point{}, nil
	}
	var points []pickup.Point
	if err := json.Unmarshal(raw, &points); err != nil {
		c.log.Warn("pickup_points_malformed", "city", city, "error", err)
		return []pickup.Point{}, nil
	}
	if points == nil {
		points = []pickup.Point{}
	}
	return points, nil
}

// SelectPickupPoint associates a pickup point with a cart. Any 2xx status is
// success.
func (c *Client) SelectPickupPoint(ctx context.Context, sel SelectRequest) error {
	payload, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("select pickup point: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SelectPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("select pickup point: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("select pickup point: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return statusError("select pickup point", resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

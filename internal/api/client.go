package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tobaccoform/internal/models"
)

const (
	BrandsPath  = "/api/tobacco/brands"
	TobaccoPath = "/api/tobacco/"
)

// Client talks to the tobacco catalog backend. It sets no timeout of its own;
// requests rely on the transport defaults.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Brands fetches the brand list in server order.
func (c *Client) Brands(ctx context.Context) ([]models.Brand, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+BrandsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build brands request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch brands: %w", err)
	}
	defer resp.Body.Close()

	var brands []models.Brand
	if err := json.NewDecoder(resp.Body).Decode(&brands); err != nil {
		return nil, fmt.Errorf("failed to decode brands (status %d): %w", resp.StatusCode, err)
	}
	return brands, nil
}

// CreateTobacco posts a record and returns the response body as text. The
// status code is not inspected: whatever the server says is the answer.
func (c *Client) CreateTobacco(ctx context.Context, record models.TobaccoRecord) (string, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+TobaccoPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to post record: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
)

const (
	pexelsAPIBaseURL = "https://api.pexels.com/v1"
	defaultTimeout   = 10 * time.Second
	maxPerPage       = 80
)

// ErrMissingAPIKey is returned by SearchPhotos when no key was configured.
var ErrMissingAPIKey = errors.New("pexels: api key not configured")

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type SearchResponse struct {
	Photos []Photo `json:"photos"`
}

type Photo struct {
	ID     int    `json:"id"`
	Source Source `json:"src"`
}

type Source struct {
	Large     string `json:"large"`
	Landscape string `json:"landscape"`
}

// Option customises a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at another host, e.g. an httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    pexelsAPIBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return "pexels" }

// SearchPhotos returns up to count landscape photo URLs for query, in the
// order Pexels ranks them.
func (c *Client) SearchPhotos(ctx context.Context, query string, count int) ([]string, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	log := logger.GetLogger()

	params := url.Values{}
	params.Add("query", query)
	params.Add("per_page", strconv.Itoa(clampPerPage(count)))
	params.Add("orientation", "landscape")

	finalURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	log.Debugw("Pexels search", "query", query, "count", count)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pexels API returned status: %d", resp.StatusCode)
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	urls := make([]string, 0, len(searchResp.Photos))
	for _, p := range searchResp.Photos {
		if p.Source.Large == "" {
			continue
		}
		urls = append(urls, p.Source.Large)
		if len(urls) == count {
			break
		}
	}
	log.Debugw("Pexels response decoded", "query", query, "photosReturned", len(urls))
	return urls, nil
}

func clampPerPage(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxPerPage {
		return maxPerPage
	}
	return n
}

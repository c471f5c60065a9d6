// Package unsplash is a minimal client for the Unsplash photo search API.
package unsplash

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
	unsplashAPIBaseURL = "https://api.unsplash.com"
	defaultTimeout     = 10 * time.Second
	maxPerPage         = 30
)

// ErrMissingAccessKey is returned by SearchPhotos when no key was configured.
var ErrMissingAccessKey = errors.New("unsplash: access key not configured")

type Client struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

type SearchResponse struct {
	Total   int      `json:"total"`
	Results []Result `json:"results"`
}

type Result struct {
	ID   string `json:"id"`
	URLs URLs   `json:"urls"`
}

type URLs struct {
	Regular string `json:"regular"`
	Small   string `json:"small"`
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func NewClient(accessKey string, opts ...Option) *Client {
	c := &Client{
		accessKey:  accessKey,
		baseURL:    unsplashAPIBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return "unsplash" }

// SearchPhotos returns up to count landscape photo URLs. Each result uses the
// regular rendition, or small when regular is missing.
func (c *Client) SearchPhotos(ctx context.Context, query string, count int) ([]string, error) {
	if c.accessKey == "" {
		return nil, ErrMissingAccessKey
	}
	log := logger.GetLogger()

	params := url.Values{}
	params.Add("query", query)
	params.Add("per_page", strconv.Itoa(clampPerPage(count)))
	params.Add("orientation", "landscape")
	params.Add("content_filter", "high")

	finalURL := fmt.Sprintf("%s/search/photos?%s", c.baseURL, params.Encode())
	log.Debugw("Unsplash search", "query", query, "count", count)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash API returned status: %d", resp.StatusCode)
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	urls := make([]string, 0, len(searchResp.Results))
	for _, r := range searchResp.Results {
		u := r.URLs.Regular
		if u == "" {
			u = r.URLs.Small
		}
		if u == "" {
			continue
		}
		urls = append(urls, u)
		if len(urls) == count {
			break
		}
	}
	log.Debugw("Unsplash response decoded", "query", query, "photosReturned", len(urls))
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

package transperth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Client handles HTTP requests to the Transperth website and API
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new Transperth client
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// getWithRetries attempts an HTTP GET request up to 3 times for 502/503/504/timeout errors
func (c *Client) getWithRetries(reqURL string) (*http.Response, error) {
	var lastErr error
	var resp *http.Response

	for attempt := 0; attempt < 3; attempt++ {
		req, err := http.NewRequest("GET", reqURL, nil)
		if err != nil {
			return nil, err
		}
		// The Transperth site blocks default Go user agents
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

		resp, lastErr = c.httpClient.Do(req)

		// If the request succeeded but gave a transient error code, also retry
		if lastErr == nil && (resp.StatusCode == 502 || resp.StatusCode == 503 || resp.StatusCode == 504) {
			resp.Body.Close()
			lastErr = fmt.Errorf("transient status code: %d", resp.StatusCode)
		} else if lastErr == nil {
			return resp, nil
		}

		if attempt < 2 {
			log.Warn().Err(lastErr).Int("attempt", attempt+1).Msg("Upstream request failed, retrying")
		}

		time.Sleep(time.Duration(attempt+1) * time.Second)
	}

	return nil, fmt.Errorf("failed after 3 attempts: %w", lastErr)
}

// Get fetches the given URL and returns the HTTP response
func (c *Client) Get(url string) (*http.Response, error) {
	resp, err := c.getWithRetries(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, url)
	}

	return resp, nil
}

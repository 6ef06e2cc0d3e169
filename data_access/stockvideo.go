package data_access

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/emanuelrivas243/streamia-server/models"
)

// StockVideoClient talks to the external stock-video provider. It is the
// read-only fallback data source for the catalog resolver.
type StockVideoClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewStockVideoClient(apiKey, baseURL string) *StockVideoClient {
	return &StockVideoClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Popular fetches the provider's popular listing.
func (c *StockVideoClient) Popular(ctx context.Context, perPage int) ([]models.StockVideo, error) {
	endpoint := fmt.Sprintf("%s/popular?per_page=%d", c.baseURL, perPage)
	return c.fetch(ctx, endpoint)
}

// Search queries the provider's search endpoint.
func (c *StockVideoClient) Search(ctx context.Context, query string, perPage int) ([]models.StockVideo, error) {
	endpoint := fmt.Sprintf("%s/search?query=%s&per_page=%d", c.baseURL, url.QueryEscape(query), perPage)
	return c.fetch(ctx, endpoint)
}

func (c *StockVideoClient) fetch(ctx context.Context, endpoint string) ([]models.StockVideo, error) {
	if c.apiKey == "" {
		return nil, errors.New("stock video API key not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stock video request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stock video API returned status %d", resp.StatusCode)
	}

	var list models.StockVideoList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("error decoding stock video response: %w", err)
	}

	return list.Videos, nil
}

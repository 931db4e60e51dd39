package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.tavily.com/search"

// maxResults caps how many results are requested from the provider.
const maxResults = 5

// Tavily calls the Tavily search API. Answer synthesis and raw page
// content are disabled to keep responses bounded.
type Tavily struct {
	APIKey   string
	Endpoint string
	client   *http.Client
}

// NewTavily constructs a Tavily search provider. An empty API key is
// accepted; the provider simply rejects the request when it is used.
func NewTavily(apiKey string) *Tavily {
	return &Tavily{
		APIKey:   apiKey,
		Endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewTavilyWithClient constructs a Tavily search provider using the supplied
// HTTP client. This is useful for overriding the default timeout.
func NewTavilyWithClient(apiKey string, client *http.Client) *Tavily {
	t := NewTavily(apiKey)
	t.client = client
	return t
}

// Search posts a query to Tavily and returns at most 5 results.
func (t *Tavily) Search(ctx context.Context, query string) ([]Result, error) {
	body := map[string]any{
		"query":               query,
		"api_key":             t.APIKey,
		"max_results":         maxResults,
		"include_answer":      false,
		"include_raw_content": false,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := t.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	var resp *http.Response
	delay := 1 * time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err = t.client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		resp.Body.Close()

		// Back off and retry on 429, doubling the delay each time up to 30 s.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var response struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(response.Results))
	for _, r := range response.Results {
		results = append(results, Result{Title: r.Title, URL: r.URL, Content: r.Content})
		if len(results) >= maxResults {
			break
		}
	}
	return results, nil
}

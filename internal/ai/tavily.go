package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brendaninnis/uncluttered-cli/internal/config"
)

const defaultTavilyAPIHost = "https://api.tavily.com"

// TavilyProvider implements SearchProvider against the Tavily search API.
type TavilyProvider struct {
	apiKey  string
	apiHost string
	client  *http.Client
}

// NewTavilyProvider creates a TavilyProvider from configuration.
func NewTavilyProvider(cfg *config.Config) (*TavilyProvider, error) {
	if cfg.EnvVars.TavilyAPIKey == "" {
		return nil, errors.New("TAVILY_API_KEY must be set")
	}
	return &TavilyProvider{
		apiKey:  cfg.EnvVars.TavilyAPIKey,
		apiHost: defaultTavilyAPIHost,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type tavilyRequest struct {
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	MaxResults        int    `json:"max_results"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type tavilyResponse struct {
	Results []struct {
		Title      string  `json:"title"`
		URL        string  `json:"url"`
		Content    string  `json:"content"`
		RawContent string  `json:"raw_content"`
		Score      float64 `json:"score"`
	} `json:"results"`
}

// SearchRecipes queries Tavily for recipe pages matching the query,
// skipping results whose URL is in the exclude set.
func (p *TavilyProvider) SearchRecipes(ctx context.Context, query string, count int, exclude map[string]struct{}) ([]SearchResult, error) {
	// Ask for extra results so exclusions don't starve the caller.
	maxResults := count + len(exclude)
	if maxResults > 20 {
		maxResults = 20
	}

	body, err := json.Marshal(tavilyRequest{
		Query:             query + " recipe ingredients instructions",
		SearchDepth:       "advanced",
		MaxResults:        maxResults,
		IncludeRawContent: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiHost+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching for recipes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("tavily search returned status %d: %s", resp.StatusCode, respBody)
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	results := make([]SearchResult, 0, count)
	for _, r := range parsed.Results {
		if r.URL == "" {
			continue
		}
		if _, skip := exclude[r.URL]; skip {
			continue
		}
		content := r.RawContent
		if content == "" {
			content = r.Content
		}
		if content == "" {
			continue
		}
		results = append(results, SearchResult{
			URL:       r.URL,
			Title:     r.Title,
			Content:   content,
			Relevance: r.Score,
		})
		if len(results) == count {
			break
		}
	}
	return results, nil
}

package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestTavilyProvider(t *testing.T, handler http.HandlerFunc) *TavilyProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &TavilyProvider{
		apiKey:  "test-key",
		apiHost: server.URL,
		client:  server.Client(),
	}
}

func TestTavilySearchRecipes(t *testing.T) {
	p := newTestTavilyProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header: %q", got)
		}

		var req tavilyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Query != "lasagna recipe ingredients instructions" {
			t.Errorf("unexpected query: %q", req.Query)
		}
		if req.SearchDepth != "advanced" || !req.IncludeRawContent {
			t.Errorf("unexpected search parameters: %+v", req)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"title": "Best Lasagna", "url": "https://a.example/lasagna", "raw_content": "full page text", "content": "snippet", "score": 0.95},
				{"title": "Quick Lasagna", "url": "https://b.example/quick", "content": "snippet only", "score": 0.82},
			},
		})
	})

	results, err := p.SearchRecipes(context.Background(), "lasagna", 5, nil)
	if err != nil {
		t.Fatalf("SearchRecipes: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Content != "full page text" {
		t.Errorf("raw_content should be preferred, got %q", results[0].Content)
	}
	if results[1].Content != "snippet only" {
		t.Errorf("content fallback not applied, got %q", results[1].Content)
	}
	if results[0].Relevance != 0.95 {
		t.Errorf("unexpected relevance: %v", results[0].Relevance)
	}
}

func TestTavilySearchRecipesFiltersExcludedAndEmpty(t *testing.T) {
	p := newTestTavilyProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"title": "Seen", "url": "https://seen.example/r", "raw_content": "text", "score": 0.9},
				{"title": "No content", "url": "https://empty.example/r", "score": 0.8},
				{"title": "Fresh", "url": "https://fresh.example/r", "raw_content": "text", "score": 0.7},
			},
		})
	})

	exclude := map[string]struct{}{"https://seen.example/r": {}}
	results, err := p.SearchRecipes(context.Background(), "pie", 5, exclude)
	if err != nil {
		t.Fatalf("SearchRecipes: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].URL != "https://fresh.example/r" {
		t.Errorf("unexpected surviving result: %q", results[0].URL)
	}
}

func TestTavilySearchRecipesCapsCount(t *testing.T) {
	p := newTestTavilyProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var results []map[string]interface{}
		for i := 0; i < 10; i++ {
			results = append(results, map[string]interface{}{
				"title":       "Recipe",
				"url":         "https://example.com/" + string(rune('a'+i)),
				"raw_content": "text",
				"score":       0.5,
			})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"results": results})
	})

	results, err := p.SearchRecipes(context.Background(), "soup", 3, nil)
	if err != nil {
		t.Fatalf("SearchRecipes: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected results capped at 3, got %d", len(results))
	}
}

func TestTavilySearchRecipesErrorStatus(t *testing.T) {
	p := newTestTavilyProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	if _, err := p.SearchRecipes(context.Background(), "soup", 3, nil); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

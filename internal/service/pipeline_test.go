package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/brendaninnis/uncluttered-cli/internal/ai"
	"github.com/brendaninnis/uncluttered-cli/internal/config"
	"github.com/brendaninnis/uncluttered-cli/internal/models"
	"github.com/brendaninnis/uncluttered-cli/internal/testutil"
)

type pipelineHarness struct {
	svc     *PipelineService
	repo    *testutil.MockRecipeRepo
	search  *testutil.MockSearchProvider
	extract *testutil.MockExtractionProvider
	saved   []*models.Recipe
}

func newPipelineHarness() *pipelineHarness {
	h := &pipelineHarness{
		repo:    &testutil.MockRecipeRepo{},
		search:  &testutil.MockSearchProvider{},
		extract: &testutil.MockExtractionProvider{},
	}
	h.repo.GetSavedURLsBySearchTermFunc = func(string) ([]string, error) { return nil, nil }
	h.repo.GetAllSlugsFunc = func() ([]string, error) { return nil, nil }
	h.repo.CreateRecipeFunc = func(r *models.Recipe) error {
		h.saved = append(h.saved, r)
		return nil
	}
	cfg := &config.Config{Prompts: config.DefaultPrompts()}
	h.svc = NewPipelineService(cfg, h.repo, h.search, h.extract)
	return h
}

func TestRunHappyPath(t *testing.T) {
	h := newPipelineHarness()

	h.search.SearchRecipesFunc = func(_ context.Context, query string, count int, _ map[string]struct{}) ([]ai.SearchResult, error) {
		if query != "apple pie" {
			t.Errorf("unexpected query: %q", query)
		}
		return []ai.SearchResult{
			testutil.TestSearchResult("https://a.example/pie", "Classic Apple Pie"),
			testutil.TestSearchResult("https://b.example/pie", "Dutch Apple Pie"),
		}, nil
	}

	scores := map[string]int{"https://a.example/pie": 60, "https://b.example/pie": 90}
	h.extract.ExtractFunc = func(_ context.Context, systemPrompt, contextText string) (*ai.ExtractedRecipe, error) {
		if !strings.Contains(systemPrompt, "Trust Score") {
			t.Error("system prompt should carry the trust rubric")
		}
		for url, score := range scores {
			if strings.Contains(contextText, url) {
				r := testutil.TestExtractedRecipe("Recipe from " + url)
				r.Trust.Score = score
				return r, nil
			}
		}
		t.Fatalf("context did not name a known source: %q", contextText)
		return nil, nil
	}

	recipes, sourceErrs, err := h.svc.Run(context.Background(), "apple pie", 2, 5)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sourceErrs) != 0 {
		t.Errorf("unexpected source errors: %v", sourceErrs)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}
	if recipes[0].TrustValue() != 90 || recipes[1].TrustValue() != 60 {
		t.Errorf("recipes not ranked by trust: %d, %d", recipes[0].TrustValue(), recipes[1].TrustValue())
	}
	if len(h.saved) != 2 {
		t.Errorf("expected 2 recipes persisted, got %d", len(h.saved))
	}
	for _, r := range h.saved {
		if r.SearchTerm != "apple pie" {
			t.Errorf("recipe missing search term: %+v", r)
		}
		if r.Slug == "" {
			t.Errorf("recipe missing slug: %+v", r)
		}
	}
}

func TestRunSourceContextFormat(t *testing.T) {
	h := newPipelineHarness()

	h.search.SearchRecipesFunc = func(context.Context, string, int, map[string]struct{}) ([]ai.SearchResult, error) {
		return []ai.SearchResult{{
			URL:     "https://a.example/pie",
			Title:   "Classic Apple Pie",
			Content: "page body",
		}}, nil
	}

	var gotContext string
	h.extract.ExtractFunc = func(_ context.Context, _, contextText string) (*ai.ExtractedRecipe, error) {
		gotContext = contextText
		return testutil.TestExtractedRecipe("Classic Apple Pie"), nil
	}

	if _, _, err := h.svc.Run(context.Background(), "apple pie", 1, 1); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "--- Source: https://a.example/pie ---\nTitle: Classic Apple Pie\n\npage body\n"
	if gotContext != want {
		t.Errorf("context text mismatch:\ngot  %q\nwant %q", gotContext, want)
	}
}

func TestRunNoResults(t *testing.T) {
	h := newPipelineHarness()
	h.search.SearchRecipesFunc = func(context.Context, string, int, map[string]struct{}) ([]ai.SearchResult, error) {
		return nil, nil
	}

	_, _, err := h.svc.Run(context.Background(), "unfindable dish", 3, 3)
	var noResults NoResultsError
	if !errors.As(err, &noResults) {
		t.Fatalf("expected NoResultsError, got %v", err)
	}
	if noResults.Query != "unfindable dish" {
		t.Errorf("unexpected query in error: %q", noResults.Query)
	}
}

func TestRunPartialFailure(t *testing.T) {
	h := newPipelineHarness()

	h.search.SearchRecipesFunc = func(context.Context, string, int, map[string]struct{}) ([]ai.SearchResult, error) {
		return []ai.SearchResult{
			testutil.TestSearchResult("https://good.example/r", "Good Recipe"),
			testutil.TestSearchResult("https://bad.example/r", "Broken Page"),
		}, nil
	}

	h.extract.ExtractFunc = func(_ context.Context, _, contextText string) (*ai.ExtractedRecipe, error) {
		if strings.Contains(contextText, "bad.example") {
			return nil, errors.New("extraction response missing title")
		}
		return testutil.TestExtractedRecipe("Good Recipe"), nil
	}

	recipes, sourceErrs, err := h.svc.Run(context.Background(), "stew", 2, 5)
	if err != nil {
		t.Fatalf("partial failure should not be a run error: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}
	if len(sourceErrs) != 1 {
		t.Fatalf("expected 1 source error, got %d", len(sourceErrs))
	}
	if sourceErrs[0].URL != "https://bad.example/r" {
		t.Errorf("unexpected failed source: %q", sourceErrs[0].URL)
	}
}

func TestRunFiveSourcesOneFails(t *testing.T) {
	h := newPipelineHarness()

	h.search.SearchRecipesFunc = func(context.Context, string, int, map[string]struct{}) ([]ai.SearchResult, error) {
		var results []ai.SearchResult
		for i := 1; i <= 5; i++ {
			results = append(results, testutil.TestSearchResult(fmt.Sprintf("https://x.example/%d", i), fmt.Sprintf("Recipe %d", i)))
		}
		return results, nil
	}

	h.extract.ExtractFunc = func(_ context.Context, _, contextText string) (*ai.ExtractedRecipe, error) {
		if strings.Contains(contextText, "https://x.example/3") {
			return nil, errors.New("extraction response has no ingredients")
		}
		for i := 1; i <= 5; i++ {
			if strings.Contains(contextText, fmt.Sprintf("https://x.example/%d", i)) {
				r := testutil.TestExtractedRecipe(fmt.Sprintf("Recipe %d", i))
				r.Trust.Score = 50 + i*5
				return r, nil
			}
		}
		return nil, errors.New("unknown source")
	}

	recipes, sourceErrs, err := h.svc.Run(context.Background(), "stew", 5, 3)
	if err != nil {
		t.Fatalf("a single failed source should not fail the run: %v", err)
	}
	if len(h.saved) != 4 {
		t.Errorf("expected 4 recipes persisted, got %d", len(h.saved))
	}
	if len(recipes) != 3 {
		t.Fatalf("expected top 3 returned, got %d", len(recipes))
	}
	if recipes[0].TrustValue() != 75 || recipes[1].TrustValue() != 70 || recipes[2].TrustValue() != 60 {
		t.Errorf("unexpected ranking: %d, %d, %d",
			recipes[0].TrustValue(), recipes[1].TrustValue(), recipes[2].TrustValue())
	}
	if len(sourceErrs) != 1 || sourceErrs[0].URL != "https://x.example/3" {
		t.Errorf("unexpected source errors: %v", sourceErrs)
	}
}

func TestRunAllSourcesFail(t *testing.T) {
	h := newPipelineHarness()

	h.search.SearchRecipesFunc = func(context.Context, string, int, map[string]struct{}) ([]ai.SearchResult, error) {
		var results []ai.SearchResult
		for i := 0; i < 5; i++ {
			results = append(results, testutil.TestSearchResult(fmt.Sprintf("https://x.example/%d", i), "Page"))
		}
		return results, nil
	}
	h.extract.ExtractFunc = func(context.Context, string, string) (*ai.ExtractedRecipe, error) {
		return nil, errors.New("no recipe on page")
	}

	_, sourceErrs, err := h.svc.Run(context.Background(), "stew", 5, 5)
	var extractionErr ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if len(extractionErr.Sources) != 5 {
		t.Errorf("expected 5 source failures in the error, got %d", len(extractionErr.Sources))
	}
	if len(sourceErrs) != 5 {
		t.Errorf("expected 5 source errors returned, got %d", len(sourceErrs))
	}
	msg := extractionErr.Error()
	if !strings.Contains(msg, "and 2 more") {
		t.Errorf("error should summarize overflow failures, got %q", msg)
	}
}

func TestRunDisplayCountLimits(t *testing.T) {
	h := newPipelineHarness()

	h.search.SearchRecipesFunc = func(context.Context, string, int, map[string]struct{}) ([]ai.SearchResult, error) {
		var results []ai.SearchResult
		for i := 0; i < 4; i++ {
			results = append(results, testutil.TestSearchResult(fmt.Sprintf("https://x.example/%d", i), fmt.Sprintf("Recipe %d", i)))
		}
		return results, nil
	}

	score := 50
	h.extract.ExtractFunc = func(_ context.Context, _, _ string) (*ai.ExtractedRecipe, error) {
		r := testutil.TestExtractedRecipe(fmt.Sprintf("Recipe %d", score))
		r.Trust.Score = score
		score += 10
		return r, nil
	}

	recipes, _, err := h.svc.Run(context.Background(), "soup", 4, 2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected display limit of 2, got %d", len(recipes))
	}
	if recipes[0].TrustValue() != 80 || recipes[1].TrustValue() != 70 {
		t.Errorf("expected the two highest scores, got %d and %d", recipes[0].TrustValue(), recipes[1].TrustValue())
	}
	// All four still persisted even though only two are displayed.
	if len(h.saved) != 4 {
		t.Errorf("expected all 4 recipes persisted, got %d", len(h.saved))
	}
}

func TestRunSlugDeduplication(t *testing.T) {
	h := newPipelineHarness()
	h.repo.GetAllSlugsFunc = func() ([]string, error) {
		return []string{"apple-pie"}, nil
	}

	h.search.SearchRecipesFunc = func(context.Context, string, int, map[string]struct{}) ([]ai.SearchResult, error) {
		return []ai.SearchResult{
			testutil.TestSearchResult("https://a.example/r", "Apple Pie"),
			testutil.TestSearchResult("https://b.example/r", "Apple Pie"),
		}, nil
	}
	h.extract.ExtractFunc = func(context.Context, string, string) (*ai.ExtractedRecipe, error) {
		return testutil.TestExtractedRecipe("Apple Pie"), nil
	}

	_, _, err := h.svc.Run(context.Background(), "apple pie", 2, 5)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.saved) != 2 {
		t.Fatalf("expected 2 recipes persisted, got %d", len(h.saved))
	}
	got := []string{h.saved[0].Slug, h.saved[1].Slug}
	if got[0] != "apple-pie-2" || got[1] != "apple-pie-3" {
		t.Errorf("slug collisions not resolved in order, got %v", got)
	}
}

func TestRunExcludesSavedURLs(t *testing.T) {
	h := newPipelineHarness()
	h.repo.GetSavedURLsBySearchTermFunc = func(searchTerm string) ([]string, error) {
		if searchTerm != "apple pie" {
			t.Errorf("unexpected search term: %q", searchTerm)
		}
		return []string{"https://seen.example/r"}, nil
	}

	var gotExclude map[string]struct{}
	h.search.SearchRecipesFunc = func(_ context.Context, _ string, _ int, exclude map[string]struct{}) ([]ai.SearchResult, error) {
		gotExclude = exclude
		return []ai.SearchResult{testutil.TestSearchResult("https://new.example/r", "New Recipe")}, nil
	}
	h.extract.ExtractFunc = func(context.Context, string, string) (*ai.ExtractedRecipe, error) {
		return testutil.TestExtractedRecipe("New Recipe"), nil
	}

	if _, _, err := h.svc.Run(context.Background(), "apple pie", 1, 1); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := gotExclude["https://seen.example/r"]; !ok {
		t.Error("saved URL was not passed to the search exclude set")
	}
}

func TestRunInvalidSourceURL(t *testing.T) {
	h := newPipelineHarness()

	h.search.SearchRecipesFunc = func(context.Context, string, int, map[string]struct{}) ([]ai.SearchResult, error) {
		return []ai.SearchResult{
			{URL: "not a url", Title: "Junk", Content: "body"},
			testutil.TestSearchResult("https://ok.example/r", "Fine Recipe"),
		}, nil
	}
	h.extract.ExtractFunc = func(_ context.Context, _, contextText string) (*ai.ExtractedRecipe, error) {
		if strings.Contains(contextText, "not a url") {
			t.Error("invalid URL should never reach extraction")
		}
		return testutil.TestExtractedRecipe("Fine Recipe"), nil
	}

	recipes, sourceErrs, err := h.svc.Run(context.Background(), "pie", 2, 5)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(recipes) != 1 {
		t.Errorf("expected 1 recipe, got %d", len(recipes))
	}
	if len(sourceErrs) != 1 || sourceErrs[0].URL != "not a url" {
		t.Errorf("expected the invalid URL in source errors, got %v", sourceErrs)
	}
}

func TestRunLowercasesSearchTerm(t *testing.T) {
	h := newPipelineHarness()

	h.search.SearchRecipesFunc = func(_ context.Context, query string, _ int, _ map[string]struct{}) ([]ai.SearchResult, error) {
		if query != "apple pie" {
			t.Errorf("query not normalized: %q", query)
		}
		return []ai.SearchResult{testutil.TestSearchResult("https://a.example/r", "Apple Pie")}, nil
	}
	h.extract.ExtractFunc = func(context.Context, string, string) (*ai.ExtractedRecipe, error) {
		return testutil.TestExtractedRecipe("Apple Pie"), nil
	}

	if _, _, err := h.svc.Run(context.Background(), "  Apple PIE ", 1, 1); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.saved) != 1 || h.saved[0].SearchTerm != "apple pie" {
		t.Errorf("search term not lowercased on persist: %+v", h.saved)
	}
}

func TestRunValidatesArguments(t *testing.T) {
	h := newPipelineHarness()

	if _, _, err := h.svc.Run(context.Background(), "   ", 3, 3); err == nil {
		t.Error("expected an error for a blank query")
	}
	if _, _, err := h.svc.Run(context.Background(), "pie", 0, 3); err == nil {
		t.Error("expected an error for fetchCount < 1")
	}
	if _, _, err := h.svc.Run(context.Background(), "pie", 3, 0); err == nil {
		t.Error("expected an error for displayCount < 1")
	}
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/brendaninnis/uncluttered-cli/internal/ai"
	"github.com/brendaninnis/uncluttered-cli/internal/config"
	"github.com/brendaninnis/uncluttered-cli/internal/logger"
	"github.com/brendaninnis/uncluttered-cli/internal/models"
	"github.com/brendaninnis/uncluttered-cli/internal/repository"
	"github.com/brendaninnis/uncluttered-cli/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PipelineService runs the search-and-extract pipeline: web search, one
// extraction call per source, slug assignment, persistence, and ranking.
type PipelineService struct {
	Cfg     *config.Config
	Repo    repository.RecipeRepo
	Search  ai.SearchProvider
	Extract ai.ExtractionProvider
}

// NewPipelineService creates a new PipelineService.
func NewPipelineService(cfg *config.Config, repo repository.RecipeRepo, search ai.SearchProvider, extract ai.ExtractionProvider) *PipelineService {
	return &PipelineService{Cfg: cfg, Repo: repo, Search: search, Extract: extract}
}

// Run executes the pipeline for a query. It fetches up to fetchCount
// sources, extracts a recipe from each, saves every success, and returns
// the top displayCount recipes ranked by trust score. Per-source failures
// are returned alongside the successes; the error return is reserved for
// run-level failures (no search results, every source failed, storage
// unavailable).
func (s *PipelineService) Run(ctx context.Context, query string, fetchCount, displayCount int) ([]models.Recipe, []SourceError, error) {
	// The search term groups recipes case-insensitively, so normalize once
	// here rather than at every storage call.
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil, fmt.Errorf("search query must not be empty")
	}
	if fetchCount < 1 || displayCount < 1 {
		return nil, nil, fmt.Errorf("fetch and display counts must be at least 1")
	}

	log := logger.WithRunID(uuid.New().String())
	log.Info("starting pipeline run",
		zap.String("query", query),
		zap.Int("fetch_count", fetchCount),
		zap.Int("display_count", displayCount),
	)

	// Skip sources we already saved for this term so repeat searches
	// surface new recipes.
	savedURLs, err := s.Repo.GetSavedURLsBySearchTerm(query)
	if err != nil {
		return nil, nil, fmt.Errorf("loading saved sources: %w", err)
	}
	exclude := make(map[string]struct{}, len(savedURLs))
	for _, u := range savedURLs {
		exclude[u] = struct{}{}
	}

	results, err := s.Search.SearchRecipes(ctx, query, fetchCount, exclude)
	if err != nil {
		return nil, nil, fmt.Errorf("web search failed: %w", err)
	}
	if len(results) == 0 {
		return nil, nil, NoResultsError{Query: query}
	}
	log.Info("search complete", zap.Int("sources", len(results)))

	existingSlugs, err := s.Repo.GetAllSlugs()
	if err != nil {
		return nil, nil, fmt.Errorf("loading existing slugs: %w", err)
	}
	slugSet := make(map[string]struct{}, len(existingSlugs))
	for _, slug := range existingSlugs {
		slugSet[slug] = struct{}{}
	}

	systemPrompt := s.Cfg.Prompts.Extraction.Recipe.System

	var (
		recipes    []models.Recipe
		sourceErrs []SourceError
	)
	for _, result := range results {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		if !govalidator.IsURL(result.URL) {
			sourceErrs = append(sourceErrs, SourceError{URL: result.URL, Err: fmt.Errorf("invalid source URL")})
			continue
		}

		recipe, err := s.extractOne(ctx, systemPrompt, result, query, slugSet)
		if err != nil {
			log.Warn("source failed extraction", zap.String("url", result.URL), zap.Error(err))
			sourceErrs = append(sourceErrs, SourceError{URL: result.URL, Err: err})
			continue
		}

		log.Info("recipe saved",
			zap.String("slug", recipe.Slug),
			zap.String("url", recipe.SourceURL),
			zap.Int("trust_score", recipe.TrustValue()),
		)
		recipes = append(recipes, *recipe)
	}

	if len(recipes) == 0 {
		return nil, sourceErrs, ExtractionError{Query: query, Sources: sourceErrs}
	}

	// Stable sort keeps insertion order among equal scores.
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].TrustValue() > recipes[j].TrustValue()
	})
	if len(recipes) > displayCount {
		recipes = recipes[:displayCount]
	}

	return recipes, sourceErrs, nil
}

// extractOne runs extraction for a single source and persists the result.
// slugSet accumulates slugs claimed earlier in this run so two new recipes
// with the same title cannot collide before either reaches the database.
func (s *PipelineService) extractOne(ctx context.Context, systemPrompt string, result ai.SearchResult, query string, slugSet map[string]struct{}) (*models.Recipe, error) {
	contextText := buildSourceContext(result)

	extracted, err := s.Extract.Extract(ctx, systemPrompt, contextText)
	if err != nil {
		return nil, err
	}

	base := util.GenerateSlug(extracted.Title)
	if base == "" {
		return nil, fmt.Errorf("title %q produced an empty slug", extracted.Title)
	}
	slug := util.MakeUniqueSlug(base, slugSet)
	slugSet[slug] = struct{}{}

	recipe := toRecipe(extracted, slug, query, result.URL)
	if err := s.Repo.CreateRecipe(recipe); err != nil {
		return nil, fmt.Errorf("saving recipe: %w", err)
	}
	return recipe, nil
}

// buildSourceContext formats a search result for the extraction prompt.
func buildSourceContext(result ai.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Source: %s ---\n", result.URL)
	fmt.Fprintf(&b, "Title: %s\n\n", result.Title)
	b.WriteString(result.Content)
	b.WriteString("\n")
	return b.String()
}

// toRecipe converts an extraction result into the storage model.
func toRecipe(extracted *ai.ExtractedRecipe, slug, searchTerm, sourceURL string) *models.Recipe {
	ingredients := make(models.Ingredients, len(extracted.Ingredients))
	for i, ing := range extracted.Ingredients {
		ingredients[i] = models.Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
	}

	recipe := &models.Recipe{
		Title:        extracted.Title,
		Description:  extracted.Description,
		Ingredients:  ingredients,
		Instructions: models.StringList(extracted.Instructions),
		PrepTime:     extracted.PrepTime,
		CookTime:     extracted.CookTime,
		ServingYield: extracted.ServingYield,
		SourceURL:    sourceURL,
		Slug:         slug,
		SearchTerm:   searchTerm,
	}
	if extracted.Trust != nil {
		recipe.SetTrust(extracted.Trust.Score, extracted.Trust.Reasoning)
	}
	return recipe
}

package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/brendaninnis/uncluttered-cli/internal/config"
)

// ExtractionProvider turns raw search-result text into a structured recipe.
// Implementations retry their own provider-specific transient failures
// internally; an error returned from Extract is terminal for that source.
type ExtractionProvider interface {
	Extract(ctx context.Context, systemPrompt string, contextText string) (*ExtractedRecipe, error)
}

// SearchProvider fetches candidate recipe sources for a query. URLs in
// exclude are treated as already seen and filtered from the results.
type SearchProvider interface {
	SearchRecipes(ctx context.Context, query string, count int, exclude map[string]struct{}) ([]SearchResult, error)
}

// SearchResult is a single web search result consumed by extraction.
type SearchResult struct {
	URL       string  `json:"url"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Relevance float64 `json:"relevance"`
}

// ExtractedRecipe is the structured output of an extraction call, before
// the pipeline attaches slug, search term, and source URL.
type ExtractedRecipe struct {
	Title        string
	Description  string
	Ingredients  []ExtractedIngredient
	Instructions []string
	PrepTime     string
	CookTime     string
	ServingYield string
	Trust        *TrustAssessment
}

// ExtractedIngredient is a single ingredient in the extraction output.
type ExtractedIngredient struct {
	Name     string
	Quantity string
	Unit     string
}

// TrustAssessment is the model's quality judgement, clamped to [0,100]
// during response validation.
type TrustAssessment struct {
	Score     int
	Reasoning string
}

// Recognized LLM_PROVIDER selector values.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
)

// NewExtractionProvider constructs the extraction backend selected by
// LLM_PROVIDER. Called once at startup; an unknown selector or a missing
// credential is a fatal configuration error, not a call-time failure.
func NewExtractionProvider(cfg *config.Config) (ExtractionProvider, error) {
	switch strings.ToLower(cfg.EnvVars.LLMProvider) {
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case ProviderOllama:
		return NewOllamaProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q: must be one of: anthropic, openai, ollama", cfg.EnvVars.LLMProvider)
	}
}

package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/brendaninnis/uncluttered-cli/internal/config"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider implements ExtractionProvider using OpenAI's strict
// JSON-schema response format.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates an OpenAIProvider from configuration.
func NewOpenAIProvider(cfg *config.Config) (*OpenAIProvider, error) {
	apiKey := cfg.EnvVars.OpenAIAPIKey
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY must be set for the openai provider")
	}

	model := cfg.EnvVars.LLMModel
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// recipeJSONSchema defines the structured-output schema shared by the
// OpenAI and Ollama backends.
func recipeJSONSchema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title": {
				Type:        jsonschema.String,
				Description: "The name of the dish",
			},
			"description": {
				Type:        jsonschema.String,
				Description: "A brief 1-2 sentence description of the dish",
			},
			"ingredients": {
				Type:        jsonschema.Array,
				Description: "List of ingredients used in the recipe",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"name":     {Type: jsonschema.String, Description: "Name of the ingredient, without quantity or unit"},
						"quantity": {Type: jsonschema.String, Description: "Amount of the ingredient, e.g. '2' or '1/2'"},
						"unit":     {Type: jsonschema.String, Description: "Unit for the quantity, empty if the ingredient has no unit"},
					},
					Required: []string{"name", "quantity"},
				},
			},
			"instructions": {
				Type:        jsonschema.Array,
				Description: "Ordered step-by-step cooking instructions (no numbering)",
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
			"prep_time": {
				Type:        jsonschema.String,
				Description: "Preparation time if mentioned, e.g. '15 minutes'",
			},
			"cook_time": {
				Type:        jsonschema.String,
				Description: "Cooking time if mentioned, e.g. '30 minutes'",
			},
			"serving_yield": {
				Type:        jsonschema.String,
				Description: "Number of servings the recipe makes, e.g. '4 servings'",
			},
			"trust_score": {
				Type:        jsonschema.Object,
				Description: "Trust score per the rubric in the system prompt",
				Properties: map[string]jsonschema.Definition{
					"score":     {Type: jsonschema.Integer, Description: "Trust score from 0-100"},
					"reasoning": {Type: jsonschema.String, Description: "Explanation for the score"},
				},
				Required: []string{"score", "reasoning"},
			},
		},
		Required: []string{"title", "description", "ingredients", "instructions", "serving_yield", "trust_score"},
	}
}

// Extract requests a schema-constrained chat completion, retrying transient
// API failures with exponential backoff.
func (p *OpenAIProvider) Extract(ctx context.Context, systemPrompt string, contextText string) (*ExtractedRecipe, error) {
	schema := recipeJSONSchema()
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: contextText},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "recipe",
				Schema: &schema,
				Strict: true,
			},
		},
	}

	var resp openai.ChatCompletionResponse
	err := callWithRetry(ctx, "openai", isRetryableOpenAIError, func() error {
		r, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("openai extraction failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("empty response from OpenAI")
	}

	return parseExtractionJSON([]byte(resp.Choices[0].Message.Content))
}

// isRetryableOpenAIError classifies rate limiting and server-side failures
// as transient.
func isRetryableOpenAIError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
	}
	return false
}

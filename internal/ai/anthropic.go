package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/brendaninnis/uncluttered-cli/internal/config"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// AnthropicProvider implements ExtractionProvider using Claude tool use.
// Forcing the save_recipe tool guarantees structured output without any
// response-text parsing heuristics.
type AnthropicProvider struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicProvider creates an AnthropicProvider from configuration.
func NewAnthropicProvider(cfg *config.Config) (*AnthropicProvider, error) {
	apiKey := cfg.EnvVars.AnthropicAPIKey
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY must be set for the anthropic provider")
	}

	model := cfg.EnvVars.LLMModel
	if model == "" {
		model = defaultAnthropicModel
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}, nil
}

// saveRecipeTool builds the Claude tool definition for structured recipe
// extraction.
func saveRecipeTool() anthropic.ToolUnionParam {
	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        "save_recipe",
			Description: anthropic.String("Save the extracted recipe data."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Type: "object",
				Properties: map[string]interface{}{
					"title": map[string]interface{}{
						"type":        "string",
						"description": "The name of the dish",
					},
					"description": map[string]interface{}{
						"type":        "string",
						"description": "A brief 1-2 sentence description of the dish",
					},
					"ingredients": map[string]interface{}{
						"type":        "array",
						"description": "List of ingredients used in the recipe",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"name":     map[string]interface{}{"type": "string", "description": "Name of the ingredient, without quantity or unit"},
								"quantity": map[string]interface{}{"type": "string", "description": "Amount of the ingredient, e.g. '2' or '1/2'"},
								"unit":     map[string]interface{}{"type": "string", "description": "Unit for the quantity, omit if the ingredient has no unit"},
							},
							"required": []string{"name", "quantity"},
						},
					},
					"instructions": map[string]interface{}{
						"type":        "array",
						"description": "Ordered step-by-step cooking instructions (no numbering)",
						"items":       map[string]interface{}{"type": "string"},
					},
					"prep_time": map[string]interface{}{
						"type":        "string",
						"description": "Preparation time if mentioned, e.g. '15 minutes'",
					},
					"cook_time": map[string]interface{}{
						"type":        "string",
						"description": "Cooking time if mentioned, e.g. '30 minutes'",
					},
					"serving_yield": map[string]interface{}{
						"type":        "string",
						"description": "Number of servings the recipe makes, e.g. '4 servings'",
					},
					"trust_score": map[string]interface{}{
						"type":        "object",
						"description": "Trust score per the rubric in the system prompt",
						"properties": map[string]interface{}{
							"score":     map[string]interface{}{"type": "integer", "description": "Trust score from 0-100"},
							"reasoning": map[string]interface{}{"type": "string", "description": "Explanation for the score"},
						},
						"required": []string{"score", "reasoning"},
					},
				},
			},
		},
	}
}

// Extract runs a forced save_recipe tool call against Claude, retrying
// transient API failures with exponential backoff.
func (p *AnthropicProvider) Extract(ctx context.Context, systemPrompt string, contextText string) (*ExtractedRecipe, error) {
	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(contextText),
				},
			},
		},
		Tools: []anthropic.ToolUnionParam{saveRecipeTool()},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfToolChoiceTool: &anthropic.ToolChoiceToolParam{
				Name: "save_recipe",
			},
		},
	}

	var msg *anthropic.Message
	err := callWithRetry(ctx, "anthropic", isRetryableAnthropicError, func() error {
		resp, err := p.client.Messages.New(ctx, params)
		if err != nil {
			return err
		}
		msg = resp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("claude extraction failed: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "tool_use" {
			raw, err := json.Marshal(block.Input)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal tool input: %w", err)
			}
			return parseExtractionJSON(raw)
		}
	}

	return nil, errors.New("no tool_use block found in Claude response")
}

// isRetryableAnthropicError classifies rate limiting and server-side
// failures as transient. Auth and validation errors propagate immediately.
func isRetryableAnthropicError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable:
			return true
		default:
			return false
		}
	}
	return false
}

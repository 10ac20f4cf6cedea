package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brendaninnis/uncluttered-cli/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

const defaultOllamaBaseURL = "http://localhost:11434/v1"

// OllamaProvider implements ExtractionProvider against a local Ollama
// server using its OpenAI-compatible endpoint.
type OllamaProvider struct {
	client *openai.Client
	model  string
}

// NewOllamaProvider creates an OllamaProvider from configuration. LLM_MODEL
// is required because Ollama has no sensible universal default.
func NewOllamaProvider(cfg *config.Config) (*OllamaProvider, error) {
	if cfg.EnvVars.LLMModel == "" {
		return nil, errors.New("LLM_MODEL must be set for the ollama provider")
	}

	baseURL := cfg.EnvVars.OllamaBaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	clientCfg := openai.DefaultConfig("ollama")
	clientCfg.BaseURL = baseURL

	return &OllamaProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.EnvVars.LLMModel,
	}, nil
}

// Extract requests a JSON-object completion. Local models do not reliably
// support strict schemas, so the schema is described in the system prompt
// and the output parsed leniently.
func (p *OllamaProvider) Extract(ctx context.Context, systemPrompt string, contextText string) (*ExtractedRecipe, error) {
	schema := recipeJSONSchema()
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling response schema: %w", err)
	}

	system := fmt.Sprintf("%s\n\nRespond with a single JSON object matching this schema:\n%s", systemPrompt, schemaJSON)

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: contextText},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	var resp openai.ChatCompletionResponse
	err = callWithRetry(ctx, "ollama", isRetryableOllamaError, func() error {
		r, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama extraction failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("empty response from Ollama")
	}

	return parseExtractionJSON([]byte(resp.Choices[0].Message.Content))
}

// isRetryableOllamaError treats transport failures as transient. A local
// server that returns a structured API error is not going to recover by
// retrying the same request.
func isRetryableOllamaError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return true
	}
	return false
}

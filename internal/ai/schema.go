package ai

import (
	"encoding/json"
	"errors"
	"fmt"
)

// extractionResult is the wire shape every backend must produce, whether
// through tool use, a strict response schema, or plain JSON mode.
type extractionResult struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Ingredients  []ingredientResult     `json:"ingredients"`
	Instructions []string               `json:"instructions"`
	PrepTime     string                 `json:"prep_time,omitempty"`
	CookTime     string                 `json:"cook_time,omitempty"`
	ServingYield string                 `json:"serving_yield"`
	TrustScore   *trustAssessmentResult `json:"trust_score,omitempty"`
}

type ingredientResult struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

type trustAssessmentResult struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// parseExtractionJSON decodes and validates a backend response. Validation
// failures are permanent: they indicate a malformed response, never a
// transient condition worth retrying.
func parseExtractionJSON(data []byte) (*ExtractedRecipe, error) {
	var result extractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}
	return result.toExtractedRecipe()
}

func (r *extractionResult) toExtractedRecipe() (*ExtractedRecipe, error) {
	if r.Title == "" {
		return nil, errors.New("extraction response missing title")
	}
	if r.ServingYield == "" {
		return nil, errors.New("extraction response missing serving_yield")
	}
	if len(r.Ingredients) == 0 {
		return nil, errors.New("extraction response has no ingredients")
	}
	if len(r.Instructions) == 0 {
		return nil, errors.New("extraction response has no instructions")
	}

	ingredients := make([]ExtractedIngredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = ExtractedIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
	}

	recipe := &ExtractedRecipe{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		ServingYield: r.ServingYield,
	}

	if r.TrustScore != nil {
		recipe.Trust = &TrustAssessment{
			Score:     clampScore(r.TrustScore.Score),
			Reasoning: r.TrustScore.Reasoning,
		}
	}

	return recipe, nil
}

// clampScore enforces the [0,100] trust score range.
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

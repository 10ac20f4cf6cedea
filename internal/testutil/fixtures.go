package testutil

import (
	"github.com/brendaninnis/uncluttered-cli/internal/ai"
	"github.com/brendaninnis/uncluttered-cli/internal/models"
	"gorm.io/gorm"
)

// TestSearchResult creates a search result with realistic fields.
func TestSearchResult(url, title string) ai.SearchResult {
	return ai.SearchResult{
		URL:       url,
		Title:     title,
		Content:   "Ingredients: 2 cups flour, 1 cup sugar. Instructions: mix and bake at 350F.",
		Relevance: 0.9,
	}
}

// TestExtractedRecipe creates an extraction result with realistic fields.
func TestExtractedRecipe(title string) *ai.ExtractedRecipe {
	return &ai.ExtractedRecipe{
		Title:       title,
		Description: "A simple baked treat.",
		Ingredients: []ai.ExtractedIngredient{
			{Name: "flour", Quantity: "2", Unit: "cups"},
			{Name: "sugar", Quantity: "1", Unit: "cup"},
		},
		Instructions: []string{"Mix the dry ingredients.", "Bake at 350F for 30 minutes."},
		PrepTime:     "10 minutes",
		CookTime:     "30 minutes",
		ServingYield: "8 servings",
		Trust: &ai.TrustAssessment{
			Score:     75,
			Reasoning: "Complete ingredient list with plausible quantities.",
		},
	}
}

// TestRecipe creates a stored recipe with realistic fields.
func TestRecipe(id uint, title, slug, searchTerm string, trustScore int) models.Recipe {
	r := models.Recipe{
		Model:       gorm.Model{ID: id},
		Title:       title,
		Description: "A simple baked treat.",
		Ingredients: models.Ingredients{
			{Name: "flour", Quantity: "2", Unit: "cups"},
			{Name: "sugar", Quantity: "1", Unit: "cup"},
		},
		Instructions: models.StringList{"Mix the dry ingredients.", "Bake at 350F for 30 minutes."},
		PrepTime:     "10 minutes",
		CookTime:     "30 minutes",
		ServingYield: "8 servings",
		SourceURL:    "https://example.com/" + slug,
		Slug:         slug,
		SearchTerm:   searchTerm,
	}
	r.SetTrust(trustScore, "Complete ingredient list with plausible quantities.")
	return r
}

package testutil

import (
	"context"
	"fmt"

	"github.com/brendaninnis/uncluttered-cli/internal/ai"
	"github.com/brendaninnis/uncluttered-cli/internal/models"
)

// --- MockExtractionProvider ---

// MockExtractionProvider is a mock implementation of ai.ExtractionProvider.
type MockExtractionProvider struct {
	ExtractFunc func(ctx context.Context, systemPrompt string, contextText string) (*ai.ExtractedRecipe, error)
}

func (m *MockExtractionProvider) Extract(ctx context.Context, systemPrompt string, contextText string) (*ai.ExtractedRecipe, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, systemPrompt, contextText)
	}
	return nil, fmt.Errorf("Extract not configured")
}

// --- MockSearchProvider ---

// MockSearchProvider is a mock implementation of ai.SearchProvider.
type MockSearchProvider struct {
	SearchRecipesFunc func(ctx context.Context, query string, count int, exclude map[string]struct{}) ([]ai.SearchResult, error)
}

func (m *MockSearchProvider) SearchRecipes(ctx context.Context, query string, count int, exclude map[string]struct{}) ([]ai.SearchResult, error) {
	if m.SearchRecipesFunc != nil {
		return m.SearchRecipesFunc(ctx, query, count, exclude)
	}
	return nil, fmt.Errorf("SearchRecipes not configured")
}

// --- MockRecipeRepo ---

// MockRecipeRepo is a mock implementation of repository.RecipeRepo.
type MockRecipeRepo struct {
	CreateRecipeFunc              func(recipe *models.Recipe) error
	GetRecipeByIDFunc             func(recipeID uint) (*models.Recipe, error)
	GetRecipeBySlugFunc           func(slug string) (*models.Recipe, error)
	GetRecipesBySearchTermFunc    func(searchTerm string) ([]models.Recipe, error)
	GetAllSlugsFunc               func() ([]string, error)
	GetSearchTermCountsFunc       func() ([]models.SearchTermCount, error)
	GetSavedURLsBySearchTermFunc  func(searchTerm string) ([]string, error)
	DeleteRecipeBySlugFunc        func(slug string) (bool, error)
	DeleteRecipesBySearchTermFunc func(searchTerm string) (int64, error)
	DeleteAllRecipesFunc          func() (int64, error)
}

func (m *MockRecipeRepo) CreateRecipe(recipe *models.Recipe) error {
	if m.CreateRecipeFunc != nil {
		return m.CreateRecipeFunc(recipe)
	}
	return fmt.Errorf("CreateRecipe not configured")
}

func (m *MockRecipeRepo) GetRecipeByID(recipeID uint) (*models.Recipe, error) {
	if m.GetRecipeByIDFunc != nil {
		return m.GetRecipeByIDFunc(recipeID)
	}
	return nil, fmt.Errorf("GetRecipeByID not configured")
}

func (m *MockRecipeRepo) GetRecipeBySlug(slug string) (*models.Recipe, error) {
	if m.GetRecipeBySlugFunc != nil {
		return m.GetRecipeBySlugFunc(slug)
	}
	return nil, fmt.Errorf("GetRecipeBySlug not configured")
}

func (m *MockRecipeRepo) GetRecipesBySearchTerm(searchTerm string) ([]models.Recipe, error) {
	if m.GetRecipesBySearchTermFunc != nil {
		return m.GetRecipesBySearchTermFunc(searchTerm)
	}
	return nil, fmt.Errorf("GetRecipesBySearchTerm not configured")
}

func (m *MockRecipeRepo) GetAllSlugs() ([]string, error) {
	if m.GetAllSlugsFunc != nil {
		return m.GetAllSlugsFunc()
	}
	return nil, fmt.Errorf("GetAllSlugs not configured")
}

func (m *MockRecipeRepo) GetSearchTermCounts() ([]models.SearchTermCount, error) {
	if m.GetSearchTermCountsFunc != nil {
		return m.GetSearchTermCountsFunc()
	}
	return nil, fmt.Errorf("GetSearchTermCounts not configured")
}

func (m *MockRecipeRepo) GetSavedURLsBySearchTerm(searchTerm string) ([]string, error) {
	if m.GetSavedURLsBySearchTermFunc != nil {
		return m.GetSavedURLsBySearchTermFunc(searchTerm)
	}
	return nil, fmt.Errorf("GetSavedURLsBySearchTerm not configured")
}

func (m *MockRecipeRepo) DeleteRecipeBySlug(slug string) (bool, error) {
	if m.DeleteRecipeBySlugFunc != nil {
		return m.DeleteRecipeBySlugFunc(slug)
	}
	return false, fmt.Errorf("DeleteRecipeBySlug not configured")
}

func (m *MockRecipeRepo) DeleteRecipesBySearchTerm(searchTerm string) (int64, error) {
	if m.DeleteRecipesBySearchTermFunc != nil {
		return m.DeleteRecipesBySearchTermFunc(searchTerm)
	}
	return 0, fmt.Errorf("DeleteRecipesBySearchTerm not configured")
}

func (m *MockRecipeRepo) DeleteAllRecipes() (int64, error) {
	if m.DeleteAllRecipesFunc != nil {
		return m.DeleteAllRecipesFunc()
	}
	return 0, fmt.Errorf("DeleteAllRecipes not configured")
}

package repository

import "github.com/brendaninnis/uncluttered-cli/internal/models"

// RecipeRepo is the interface for recipe repository operations.
type RecipeRepo interface {
	CreateRecipe(recipe *models.Recipe) error
	GetRecipeByID(recipeID uint) (*models.Recipe, error)
	GetRecipeBySlug(slug string) (*models.Recipe, error)
	GetRecipesBySearchTerm(searchTerm string) ([]models.Recipe, error)
	GetAllSlugs() ([]string, error)
	GetSearchTermCounts() ([]models.SearchTermCount, error)
	GetSavedURLsBySearchTerm(searchTerm string) ([]string, error)
	DeleteRecipeBySlug(slug string) (bool, error)
	DeleteRecipesBySearchTerm(searchTerm string) (int64, error)
	DeleteAllRecipes() (int64, error)
}

package repository

import (
	"errors"
	"fmt"

	"github.com/brendaninnis/uncluttered-cli/internal/models"
	"gorm.io/gorm"
)

// RecipeRepository is a repository for interacting with recipes.
type RecipeRepository struct {
	DB *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{DB: db}
}

// CreateRecipe creates a new recipe.
func (r *RecipeRepository) CreateRecipe(recipe *models.Recipe) error {
	if err := r.DB.Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// GetRecipeByID retrieves a recipe by its ID.
func (r *RecipeRepository) GetRecipeByID(recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.DB.First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{message: "Recipe not found"}
		}
		return nil, err
	}
	return &recipe, nil
}

// GetRecipeBySlug retrieves a recipe by its slug.
func (r *RecipeRepository) GetRecipeBySlug(slug string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.DB.Where("slug = ?", slug).First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{message: "Recipe not found"}
		}
		return nil, err
	}
	return &recipe, nil
}

// GetRecipesBySearchTerm retrieves recipes saved under a search term,
// matched case-insensitively and ordered from most to least trusted.
// Unscored recipes rank as zero.
func (r *RecipeRepository) GetRecipesBySearchTerm(searchTerm string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.DB.Where("LOWER(search_term) = LOWER(?)", searchTerm).
		Order("COALESCE(trust_score, 0) DESC, id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetAllSlugs returns every slug currently in the database.
func (r *RecipeRepository) GetAllSlugs() ([]string, error) {
	var slugs []string
	err := r.DB.Model(&models.Recipe{}).Pluck("slug", &slugs).Error
	if err != nil {
		return nil, err
	}
	return slugs, nil
}

// GetSearchTermCounts returns each distinct search term with its recipe
// count, ordered alphabetically.
func (r *RecipeRepository) GetSearchTermCounts() ([]models.SearchTermCount, error) {
	var counts []models.SearchTermCount
	err := r.DB.Model(&models.Recipe{}).
		Select("search_term, COUNT(*) AS count").
		Where("search_term <> ''").
		Group("search_term").
		Order("search_term ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// GetSavedURLsBySearchTerm returns the source URLs already saved under a
// search term, so repeat searches can skip them.
func (r *RecipeRepository) GetSavedURLsBySearchTerm(searchTerm string) ([]string, error) {
	var urls []string
	err := r.DB.Model(&models.Recipe{}).
		Where("LOWER(search_term) = LOWER(?) AND source_url <> ''", searchTerm).
		Pluck("source_url", &urls).Error
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// DeleteRecipeBySlug deletes a recipe by slug, reporting whether anything
// was deleted.
func (r *RecipeRepository) DeleteRecipeBySlug(slug string) (bool, error) {
	// Hard delete so the slug becomes available again.
	result := r.DB.Unscoped().Where("slug = ?", slug).Delete(&models.Recipe{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete recipe: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteRecipesBySearchTerm deletes all recipes saved under a search term
// and returns how many were removed.
func (r *RecipeRepository) DeleteRecipesBySearchTerm(searchTerm string) (int64, error) {
	result := r.DB.Unscoped().Where("LOWER(search_term) = LOWER(?)", searchTerm).Delete(&models.Recipe{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete recipes: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteAllRecipes deletes every recipe and returns how many were removed.
func (r *RecipeRepository) DeleteAllRecipes() (int64, error) {
	result := r.DB.Unscoped().Where("1 = 1").Delete(&models.Recipe{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete recipes: %w", result.Error)
	}
	return result.RowsAffected, nil
}

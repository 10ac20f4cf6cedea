package service

import (
	"fmt"

	"github.com/brendaninnis/uncluttered-cli/internal/models"
	"github.com/brendaninnis/uncluttered-cli/internal/repository"
)

// RecipeService is the business logic layer for stored-recipe operations.
type RecipeService struct {
	Repo repository.RecipeRepo
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(repo repository.RecipeRepo) *RecipeService {
	return &RecipeService{Repo: repo}
}

// GetRecipeBySlug retrieves a single stored recipe.
func (s *RecipeService) GetRecipeBySlug(slug string) (*models.Recipe, error) {
	return s.Repo.GetRecipeBySlug(slug)
}

// GetRecipesBySearchTerm retrieves recipes saved under a search term,
// ordered by trust score.
func (s *RecipeService) GetRecipesBySearchTerm(searchTerm string) ([]models.Recipe, error) {
	return s.Repo.GetRecipesBySearchTerm(searchTerm)
}

// GetSearchTermCounts lists stored search terms with their recipe counts.
func (s *RecipeService) GetSearchTermCounts() ([]models.SearchTermCount, error) {
	return s.Repo.GetSearchTermCounts()
}

// DeleteRecipeBySlug deletes a single recipe. It returns a NotFoundError
// when no recipe has the slug, so callers can distinguish a typo from a
// storage failure.
func (s *RecipeService) DeleteRecipeBySlug(slug string) error {
	deleted, err := s.Repo.DeleteRecipeBySlug(slug)
	if err != nil {
		return err
	}
	if !deleted {
		return repository.NewNotFoundError(fmt.Sprintf("no recipe with slug %q", slug))
	}
	return nil
}

// DeleteRecipesBySearchTerm deletes all recipes saved under a search term.
func (s *RecipeService) DeleteRecipesBySearchTerm(searchTerm string) (int64, error) {
	if searchTerm == "" {
		return 0, fmt.Errorf("search term must not be empty")
	}
	return s.Repo.DeleteRecipesBySearchTerm(searchTerm)
}

// DeleteAllRecipes deletes every stored recipe.
func (s *RecipeService) DeleteAllRecipes() (int64, error) {
	return s.Repo.DeleteAllRecipes()
}

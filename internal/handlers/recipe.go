package handlers

import (
	"net/http"

	"github.com/brendaninnis/uncluttered-cli/internal/logger"
	"github.com/brendaninnis/uncluttered-cli/internal/repository"
	"github.com/brendaninnis/uncluttered-cli/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecipeHandler is the handler for stored-recipe requests.
type RecipeHandler struct {
	Service *service.RecipeService
}

// NewRecipeHandler is the constructor function for initializing a new RecipeHandler.
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{Service: recipeService}
}

// ListRecipes returns the recipes saved under a search term, ranked by
// trust score.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	searchTerm := c.Query("search_term")
	if searchTerm == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search_term query parameter is required"})
		return
	}

	recipes, err := h.Service.GetRecipesBySearchTerm(searchTerm)
	if err != nil {
		logger.Get().Error("failed to list recipes", zap.String("search_term", searchTerm), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns a recipe by slug.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	slug := c.Param("slug")

	recipe, err := h.Service.GetRecipeBySlug(slug)
	if err != nil {
		switch e := err.(type) {
		case repository.NotFoundError:
			c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
		default:
			logger.Get().Error("failed to get recipe", zap.String("slug", slug), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// ListSearchTerms returns every saved search term with its recipe count.
func (h *RecipeHandler) ListSearchTerms(c *gin.Context) {
	counts, err := h.Service.GetSearchTermCounts()
	if err != nil {
		logger.Get().Error("failed to list search terms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list search terms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"search_terms": counts})
}

// DeleteRecipe deletes a recipe by slug.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	slug := c.Param("slug")

	if err := h.Service.DeleteRecipeBySlug(slug); err != nil {
		switch e := err.(type) {
		case repository.NotFoundError:
			c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
		default:
			logger.Get().Error("failed to delete recipe", zap.String("slug", slug), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": slug})
}

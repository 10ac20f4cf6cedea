package router

import (
	"time"

	"github.com/brendaninnis/uncluttered-cli/internal/ai"
	"github.com/brendaninnis/uncluttered-cli/internal/config"
	"github.com/brendaninnis/uncluttered-cli/internal/handlers"
	"github.com/brendaninnis/uncluttered-cli/internal/logger"
	"github.com/brendaninnis/uncluttered-cli/internal/middleware"
	"github.com/brendaninnis/uncluttered-cli/internal/repository"
	"github.com/brendaninnis/uncluttered-cli/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter sets up the Gin router.
func SetupRouter(cfg *config.Config, database *gorm.DB, searchProvider ai.SearchProvider, extractionProvider ai.ExtractionProvider) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	r.Use(cors.New(corsConfig))

	// Request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	recipeRepo := repository.NewRecipeRepository(database)
	recipeService := service.NewRecipeService(recipeRepo)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	pipeline := service.NewPipelineService(cfg, recipeRepo, searchProvider, extractionProvider)
	searchHandler := handlers.NewSearchHandler(pipeline)

	api := r.Group("/v1")
	{
		// Recipe-related routes

		// List recipes saved under a search term
		api.GET("/recipes", recipeHandler.ListRecipes)
		// Get a single recipe by its slug
		api.GET("/recipes/:slug", recipeHandler.GetRecipe)
		// Delete a recipe by its slug
		api.DELETE("/recipes/:slug", recipeHandler.DeleteRecipe)
		// List saved search terms with counts
		api.GET("/search-terms", recipeHandler.ListSearchTerms)

		// Run the search-and-extract pipeline. Rate limited because each
		// request fans out into web search and LLM calls.
		api.POST("/search",
			middleware.RateLimitByIP(2, 5*time.Minute, 15*time.Minute),
			searchHandler.Search)
	}

	return r
}

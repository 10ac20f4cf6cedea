package handlers

import (
	"errors"
	"net/http"

	"github.com/brendaninnis/uncluttered-cli/internal/logger"
	"github.com/brendaninnis/uncluttered-cli/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler runs the search-and-extract pipeline over HTTP.
type SearchHandler struct {
	Pipeline *service.PipelineService
}

// NewSearchHandler is the constructor function for initializing a new SearchHandler.
func NewSearchHandler(pipeline *service.PipelineService) *SearchHandler {
	return &SearchHandler{Pipeline: pipeline}
}

type searchRequest struct {
	Query        string `json:"query" binding:"required"`
	FetchCount   int    `json:"fetch_count"`
	DisplayCount int    `json:"display_count"`
}

// Search runs the pipeline for a query and returns the ranked recipes
// alongside any per-source failures.
func (h *SearchHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	if req.FetchCount == 0 {
		req.FetchCount = 5
	}
	if req.DisplayCount == 0 {
		req.DisplayCount = 3
	}

	recipes, sourceErrs, err := h.Pipeline.Run(c.Request.Context(), req.Query, req.FetchCount, req.DisplayCount)
	if err != nil {
		var noResults service.NoResultsError
		var extraction service.ExtractionError
		switch {
		case errors.As(err, &noResults):
			c.JSON(http.StatusNotFound, gin.H{"error": noResults.Error()})
		case errors.As(err, &extraction):
			c.JSON(http.StatusBadGateway, gin.H{"error": extraction.Error()})
		default:
			logger.Get().Error("pipeline run failed", zap.String("query", req.Query), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		}
		return
	}

	skipped := make([]gin.H, 0, len(sourceErrs))
	for _, srcErr := range sourceErrs {
		skipped = append(skipped, gin.H{"url": srcErr.URL, "error": srcErr.Err.Error()})
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"skipped": skipped,
	})
}

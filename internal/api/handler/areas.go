package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/leadscout/internal/service"
)

// AreaHandler handles area work-record and statistics endpoints.
type AreaHandler struct {
	query *service.LeadQueryService
}

// NewAreaHandler creates a new area handler.
// Parameters:
//   - query: lead query service.
// Returns:
//   - *AreaHandler: initialized handler.
func NewAreaHandler(query *service.LeadQueryService) *AreaHandler {
	return &AreaHandler{query: query}
}

// ListAreas handles GET /api/v1/areas. The city query parameter is required.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AreaHandler) ListAreas(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'city' is required",
		})
		return
	}

	areas, err := h.query.ListAreas(c.Request.Context(), city)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list areas: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"areas": areas})
}

// GetStats handles GET /api/v1/stats. The city query parameter is required.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AreaHandler) GetStats(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'city' is required",
		})
		return
	}

	stats, err := h.query.Stats(c.Request.Context(), city)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute stats: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

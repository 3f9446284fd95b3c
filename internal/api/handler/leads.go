package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/leadscout/internal/repository"
	"github.com/timmy/leadscout/internal/service"
)

// LeadHandler handles lead listing endpoints.
type LeadHandler struct {
	query *service.LeadQueryService
}

// NewLeadHandler creates a new lead handler.
// Parameters:
//   - query: lead query service.
// Returns:
//   - *LeadHandler: initialized handler.
func NewLeadHandler(query *service.LeadQueryService) *LeadHandler {
	return &LeadHandler{query: query}
}

// ListLeads handles GET /api/v1/leads with city/area/search/min_rating
// filters and page/page_size pagination.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *LeadHandler) ListLeads(c *gin.Context) {
	filter := repository.LeadFilter{
		City:   c.Query("city"),
		Area:   c.Query("area"),
		Search: c.Query("search"),
	}
	if minRating := c.Query("min_rating"); minRating != "" {
		if v, err := strconv.ParseFloat(minRating, 64); err == nil {
			filter.MinRating = v
		}
	}

	page := parseIntDefault(c.Query("page"), 1)
	pageSize := parseIntDefault(c.Query("page_size"), 25)

	result, err := h.query.ListLeads(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list leads: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jstwx07/routeto-backend-go/internal/models"
	"github.com/jstwx07/routeto-backend-go/internal/service"
	"github.com/jstwx07/routeto-backend-go/pkg/response"
)

// RouteHandler handles HTTP requests for route risk analysis
type RouteHandler struct {
	service *service.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(service *service.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// AnalyzeRoutes handles POST /api/v1/routes/analyze with caller-supplied
// candidate geometries.
func (h *RouteHandler) AnalyzeRoutes(c *gin.Context) {
	var req models.RouteAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report, err := h.service.AnalyzeCandidates(req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// AnalyzeBetween handles GET /api/v1/routes/analyze, fetching candidates
// from the external routing provider.
func (h *RouteHandler) AnalyzeBetween(c *gin.Context) {
	var q models.RouteAnalyzeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	entry, err := h.service.AnalyzeBetween(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	writeCached(c, entry, "application/json")
}

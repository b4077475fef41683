package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jstwx07/routeto-backend-go/internal/models"
	"github.com/jstwx07/routeto-backend-go/internal/service"
	"github.com/jstwx07/routeto-backend-go/pkg/response"
)

// ClusterHandler handles HTTP requests for spatial clusters
type ClusterHandler struct {
	service *service.ClusterService
}

// NewClusterHandler creates a new cluster handler
func NewClusterHandler(service *service.ClusterService) *ClusterHandler {
	return &ClusterHandler{service: service}
}

// GetClusters handles GET /api/v1/clusters
func (h *ClusterHandler) GetClusters(c *gin.Context) {
	var q models.ClusterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	entry, err := h.service.GetClusters(q)
	if err != nil {
		fail(c, err)
		return
	}
	writeCached(c, entry, "application/geo+json")
}

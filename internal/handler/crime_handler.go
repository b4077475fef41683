package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jstwx07/routeto-backend-go/internal/models"
	"github.com/jstwx07/routeto-backend-go/internal/service"
	"github.com/jstwx07/routeto-backend-go/pkg/response"
)

// CrimeHandler handles HTTP requests for incident features
type CrimeHandler struct {
	service *service.CrimeService
}

// NewCrimeHandler creates a new crime handler
func NewCrimeHandler(service *service.CrimeService) *CrimeHandler {
	return &CrimeHandler{service: service}
}

// GetCrimes handles GET /api/v1/crimes
func (h *CrimeHandler) GetCrimes(c *gin.Context) {
	var q models.CrimeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	// Most recent incidents first unless the caller asks otherwise
	if q.Sort == "" {
		q.Sort = "date_desc"
	}

	entry, err := h.service.GetFeatures(q)
	if err != nil {
		fail(c, err)
		return
	}
	writeCached(c, entry, "application/geo+json")
}

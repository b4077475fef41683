package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jstwx07/routeto-backend-go/internal/cache"
	"github.com/jstwx07/routeto-backend-go/internal/models"
	"github.com/jstwx07/routeto-backend-go/pkg/response"
)

// writeCached sends a cached payload with its validator and expiry hint,
// answering If-None-Match revalidation with 304.
func writeCached(c *gin.Context, entry *cache.Entry, contentType string) {
	etag := `"` + entry.Validator + `"`
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", entry.MaxAge(time.Now())))
	c.Header("ETag", etag)
	c.Data(http.StatusOK, contentType, entry.Payload)
}

// fail maps the error taxonomy onto HTTP statuses.
func fail(c *gin.Context, err error) {
	var ve *models.ValidationError
	var le *models.LoadError
	switch {
	case errors.As(err, &ve):
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
	case errors.Is(err, models.ErrNoRoutes):
		response.Error(c, http.StatusNotFound, "No routes found between the specified locations", err)
	case errors.As(err, &le):
		response.Error(c, http.StatusBadRequest, "Failed to load dataset", err)
	default:
		response.Error(c, http.StatusInternalServerError, "Internal error", err)
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jstwx07/routeto-backend-go/internal/config"
	"github.com/jstwx07/routeto-backend-go/internal/store"
	"github.com/jstwx07/routeto-backend-go/pkg/response"
)

// AdminHandler handles health checks and dataset reloads
type AdminHandler struct {
	store *store.Store
	cfg   *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(st *store.Store, cfg *config.Config) *AdminHandler {
	return &AdminHandler{store: st, cfg: cfg}
}

// Health handles GET /health
func (h *AdminHandler) Health(c *gin.Context) {
	rows := 0
	var generation uint64
	if snap := h.store.Snapshot(); snap != nil {
		rows = len(snap.Records)
		generation = snap.Generation
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"rows":       rows,
		"generation": generation,
	})
}

type reloadRequest struct {
	Path string `json:"path"`
}

// Reload handles POST /reload, replacing the dataset snapshot wholesale.
// Cached responses from the previous generation become unreachable.
func (h *AdminHandler) Reload(c *gin.Context) {
	var req reloadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	path := req.Path
	if path == "" {
		path = h.cfg.DataPath
	}

	snap, err := h.store.Load(path)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, gin.H{
		"loaded_rows":   snap.Accepted,
		"rejected_rows": snap.Rejected,
		"path":          path,
		"generation":    snap.Generation,
	})
}

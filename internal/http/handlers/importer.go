package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrypal/pantrypal-backend/internal/http/response"
	"github.com/pantrypal/pantrypal-backend/internal/services"
)

type ImportHandler struct {
	importer services.ImportService
	dedup    services.DedupService
}

func NewImportHandler(importer services.ImportService, dedup services.DedupService) *ImportHandler {
	return &ImportHandler{importer: importer, dedup: dedup}
}

type importRequest struct {
	Provider     string `json:"provider" binding:"required"`
	ServerURL    string `json:"server_url" binding:"required"`
	APIToken     string `json:"api_token" binding:"required"`
	ImportImages *bool  `json:"import_images"`
	Limit        int    `json:"limit"`
}

// POST /api/recipes/import
func (h *ImportHandler) Run(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	importImages := true
	if req.ImportImages != nil {
		importImages = *req.ImportImages
	}

	stats, err := h.importer.Run(c.Request.Context(), userID, services.ImportOptions{
		Provider:     req.Provider,
		ServerURL:    req.ServerURL,
		APIToken:     req.APIToken,
		ImportImages: importImages,
		Limit:        req.Limit,
	})
	if err != nil {
		if errors.Is(err, services.ErrImportInProgress) {
			response.RespondError(c, http.StatusConflict, "import_in_progress", err)
			return
		}
		if stats != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"stats": stats, "error": gin.H{"message": err.Error(), "code": "import_failed"}})
			return
		}
		response.RespondServiceError(c, "import_failed", err)
		return
	}
	response.RespondOK(c, stats)
}

// POST /api/recipes/import/test
func (h *ImportHandler) TestConnection(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var req struct {
		Provider  string `json:"provider" binding:"required"`
		ServerURL string `json:"server_url" binding:"required"`
		APIToken  string `json:"api_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.importer.TestConnection(c.Request.Context(), req.Provider, req.ServerURL, req.APIToken); err != nil {
		response.RespondOK(c, gin.H{"success": false, "provider": req.Provider, "error": err.Error()})
		return
	}
	response.RespondOK(c, gin.H{"success": true, "provider": req.Provider})
}

// POST /api/recipes/dedup
func (h *ImportHandler) Dedup(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	stats, err := h.dedup.Run(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "dedup_failed", err)
		return
	}
	response.RespondOK(c, stats)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrypal/pantrypal-backend/internal/http/response"
	"github.com/pantrypal/pantrypal-backend/internal/services"
)

type IntegrationHandler struct {
	integrations services.IntegrationService
}

func NewIntegrationHandler(integrations services.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{integrations: integrations}
}

// GET /api/recipes/integration
func (h *IntegrationHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	row, err := h.integrations.Get(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, "get_integration_failed", err)
		return
	}
	response.RespondOK(c, row)
}

// PUT /api/recipes/integration
func (h *IntegrationHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Provider     string `json:"provider" binding:"required"`
		ServerURL    string `json:"server_url" binding:"required"`
		ImportImages *bool  `json:"import_images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	importImages := true
	if req.ImportImages != nil {
		importImages = *req.ImportImages
	}

	row, err := h.integrations.Save(c.Request.Context(), userID, req.Provider, req.ServerURL, importImages)
	if err != nil {
		response.RespondServiceError(c, "save_integration_failed", err)
		return
	}
	response.RespondOK(c, row)
}

// DELETE /api/recipes/integration
func (h *IntegrationHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.integrations.Delete(c.Request.Context(), userID); err != nil {
		response.RespondServiceError(c, "delete_integration_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

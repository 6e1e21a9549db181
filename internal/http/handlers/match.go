package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrypal/pantrypal-backend/internal/http/response"
	"github.com/pantrypal/pantrypal-backend/internal/services"
)

const defaultExpiringDays = 7

type MatchHandler struct {
	match services.MatchService
}

func NewMatchHandler(match services.MatchService) *MatchHandler {
	return &MatchHandler{match: match}
}

// POST /api/recipes/match
func (h *MatchHandler) Run(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ExpiringDays int `json:"expiring_days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.ExpiringDays <= 0 {
		req.ExpiringDays = defaultExpiringDays
	}

	stats, err := h.match.RunMatch(c.Request.Context(), userID, req.ExpiringDays)
	if err != nil {
		// Partial stats still go back so the caller can see how far it got.
		if stats != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"stats": stats, "error": gin.H{"message": err.Error(), "code": "match_run_failed"}})
			return
		}
		response.RespondServiceError(c, "match_run_failed", err)
		return
	}
	response.RespondOK(c, stats)
}

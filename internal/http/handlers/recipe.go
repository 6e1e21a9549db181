package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantrypal/pantrypal-backend/internal/http/response"
	"github.com/pantrypal/pantrypal-backend/internal/platform/ctxutil"
	"github.com/pantrypal/pantrypal-backend/internal/platform/dbctx"
	"github.com/pantrypal/pantrypal-backend/internal/services"
)

type RecipeHandler struct {
	recipes     services.RecipeService
	preferences services.PreferenceService
}

func NewRecipeHandler(recipes services.RecipeService, preferences services.PreferenceService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, preferences: preferences}
}

// GET /api/recipes
func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	views, err := h.recipes.List(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, "list_recipes_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"recipes": views, "total": len(views)})
}

// GET /api/recipes/search?q=...&limit=...
func (h *RecipeHandler) Search(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	query := c.Query("q")
	if query == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_query", fmt.Errorf("query parameter q is required"))
		return
	}
	views, err := h.recipes.Search(c.Request.Context(), userID, query, intQuery(c, "limit", 20))
	if err != nil {
		response.RespondServiceError(c, "search_recipes_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"recipes": views, "total": len(views)})
}

// GET /api/recipes/suggestions?limit=...
func (h *RecipeHandler) Suggestions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	views, err := h.recipes.Suggestions(c.Request.Context(), userID, intQuery(c, "limit", 10))
	if err != nil {
		response.RespondServiceError(c, "recipe_suggestions_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"recipes": views})
}

// GET /api/recipes/expiring
func (h *RecipeHandler) Expiring(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	views, err := h.recipes.Expiring(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, "expiring_recipes_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"recipes": views})
}

// GET /api/recipes/favorites
func (h *RecipeHandler) Favorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	views, err := h.recipes.Favorites(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, "favorite_recipes_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"recipes": views})
}

// GET /api/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.recipes.Get(c.Request.Context(), userID, recipeID)
	if err != nil {
		response.RespondServiceError(c, "get_recipe_failed", err)
		return
	}
	response.RespondOK(c, view)
}

// DELETE /api/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	recipeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), recipeID); err != nil {
		response.RespondServiceError(c, "delete_recipe_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": recipeID})
}

// POST /api/recipes/:id/favorite
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	favorite, err := h.preferences.ToggleFavorite(dbctx.Context{Ctx: c.Request.Context()}, userID, recipeID)
	if err != nil {
		response.RespondServiceError(c, "toggle_favorite_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"favorite": favorite})
}

// POST /api/recipes/:id/cooked
func (h *RecipeHandler) RecordCooked(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	pref, err := h.preferences.RecordCooked(dbctx.Context{Ctx: c.Request.Context()}, userID, recipeID)
	if err != nil {
		response.RespondServiceError(c, "record_cooked_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"times_cooked": pref.TimesCooked, "last_cooked": pref.LastCooked})
}

// PUT /api/recipes/:id/notes
func (h *RecipeHandler) SetNotes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.preferences.SetNotes(dbctx.Context{Ctx: c.Request.Context()}, userID, recipeID, req.Notes); err != nil {
		response.RespondServiceError(c, "set_notes_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"notes": req.Notes})
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing identity"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

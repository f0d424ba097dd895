package handlers

import (
	"net/http"

	"github.com/anonto42/careerpulse/backend/internal/middleware"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles reaction toggles on posts
type ReactionHandler struct {
	reactionService *services.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionService *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// RegisterReactionRoutes registers reaction routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/react", h.ToggleReaction, requireAuth)
}

// ToggleReaction adds, removes or changes the caller's reaction (?reaction_type=)
func (h *ReactionHandler) ToggleReaction(c echo.Context) error {
	resp, err := h.reactionService.Toggle(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), c.QueryParam("reaction_type"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

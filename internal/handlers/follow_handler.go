package handlers

import (
	"net/http"

	"github.com/anonto42/careerpulse/backend/internal/middleware"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/users/:id/follow", h.ToggleFollow, requireAuth)
}

// ToggleFollow follows the user, or unfollows if already following
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	following, followed, err := h.followService.ToggleFollow(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	message := "User unfollowed"
	if followed {
		message = "User followed"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message, "following": following})
}

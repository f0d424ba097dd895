package handlers

import (
	"net/http"

	"github.com/anonto42/careerpulse/backend/internal/middleware"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user profile lookups
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers user routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/search/query", h.SearchUsers)
	g.GET("/users/suggested/me", h.GetSuggested, requireAuth)
}

// GetUser returns a user's public profile
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers matches ?q= against names and headlines
func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.userService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetSuggested returns people the caller does not follow yet
func (h *UserHandler) GetSuggested(c echo.Context) error {
	users, err := h.userService.Suggested(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

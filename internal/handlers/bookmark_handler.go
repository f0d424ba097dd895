package handlers

import (
	"net/http"

	"github.com/anonto42/careerpulse/backend/internal/middleware"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler handles bookmark toggles
type BookmarkHandler struct {
	bookmarkService *services.BookmarkService
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkService *services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

// RegisterBookmarkRoutes registers bookmark routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/bookmark", h.ToggleBookmark, requireAuth)
}

// ToggleBookmark adds or removes a post from the caller's bookmarks
func (h *BookmarkHandler) ToggleBookmark(c echo.Context) error {
	bookmarks, added, err := h.bookmarkService.Toggle(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	message := "Bookmark removed"
	if added {
		message = "Bookmark added"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message, "bookmarks": bookmarks})
}

package handlers

import (
	"net/http"

	"github.com/anonto42/careerpulse/backend/internal/middleware"
	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/comments", h.CreateComment, requireAuth)
	g.GET("/posts/:id/comments", h.GetComments)
	g.PUT("/comments/:id", h.UpdateComment, requireAuth)
	g.DELETE("/comments/:id", h.DeleteComment, requireAuth)
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.Create(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// GetComments lists a post's comments, oldest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	comments, err := h.commentService.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// UpdateComment edits a comment's content
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	var req models.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	if err := h.commentService.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted"})
}

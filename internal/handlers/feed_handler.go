package handlers

import (
	"net/http"

	"github.com/anonto42/careerpulse/backend/internal/middleware"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves lists of posts
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/posts", h.GetFeed, requireAuth)
	g.GET("/posts/all", h.GetAllPosts)
	g.GET("/posts/trending", h.GetTrending)
	g.GET("/posts/search", h.SearchPosts)
	g.GET("/posts/user/:user_id", h.GetUserPosts)
	g.GET("/posts/bookmarked/me", h.GetBookmarked, requireAuth)
}

// GetFeed returns posts from the user and the people they follow
func (h *FeedHandler) GetFeed(c echo.Context) error {
	skip, limit, err := pagination(c)
	if err != nil {
		return err
	}
	posts, err := h.feedService.Feed(c.Request().Context(), middleware.CurrentUser(c), skip, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetAllPosts returns every post, newest first
func (h *FeedHandler) GetAllPosts(c echo.Context) error {
	skip, limit, err := pagination(c)
	if err != nil {
		return err
	}
	posts, err := h.feedService.All(c.Request().Context(), skip, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetTrending returns the most viewed posts
func (h *FeedHandler) GetTrending(c echo.Context) error {
	posts, err := h.feedService.Trending(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// SearchPosts matches ?q= against content and hashtags
func (h *FeedHandler) SearchPosts(c echo.Context) error {
	posts, err := h.feedService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetUserPosts returns one user's posts
func (h *FeedHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.feedService.ByUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetBookmarked returns the authenticated user's bookmarked posts
func (h *FeedHandler) GetBookmarked(c echo.Context) error {
	posts, err := h.feedService.Bookmarked(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

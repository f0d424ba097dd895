package handlers

import (
	"net/http"

	"github.com/anonto42/careerpulse/backend/internal/middleware"
	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterAuthRoutes registers authentication-related routes. limit guards the
// credential endpoints; requireAuth guards the profile endpoints.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, requireAuth, limit echo.MiddlewareFunc, withFirebase bool) {
	g.POST("/auth/signup", h.Signup, limit)
	g.POST("/auth/login", h.Login, limit)
	if withFirebase {
		g.POST("/auth/firebase", h.FirebaseLogin, limit)
	}
	g.GET("/auth/me", h.Me, requireAuth)
	g.PUT("/auth/profile", h.UpdateProfile, requireAuth)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Signup(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Login handles local user authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// FirebaseLogin verifies a Firebase ID token and issues a local token
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.FirebaseLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateProfile updates the provided profile fields of the authenticated user
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), middleware.CurrentUser(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

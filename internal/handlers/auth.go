package handlers

import (
	"net/http"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles signup, login and the caller's own profile.
type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterAuthRoutes registers the public auth routes.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// RegisterProfileRoutes registers routes that need a bearer token.
func (h *AuthHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/auth/me", h.Me)
	g.PUT("/auth/me", h.UpdateMe)
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tok, err := h.authService.Signup(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, tok)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tok, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, tok)
}

// FirebaseLogin exchanges a Firebase ID token for a local bearer token.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tok, err := h.authService.FirebaseLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, tok)
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, user)
}

func (h *AuthHandler) UpdateMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	updated, err := h.authService.UpdateProfile(c.Request().Context(), user, &req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, updated)
}

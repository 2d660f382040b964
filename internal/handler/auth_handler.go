package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "stockroom/internal/errors"
	"stockroom/internal/model"
	"stockroom/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries the Google-issued ID token.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// AuthResponse represents a successful authentication response.
type AuthResponse struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.ErrEmailPasswordRequired)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.ErrEmailPasswordRequired)
	}

	token, user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: user.Public()})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.ErrEmailPasswordRequired)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.ErrEmailPasswordRequired)
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: user.Public()})
}

// GoogleLogin godoc
// @Summary Login with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleLoginRequest true "Google ID token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/google-login [post]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.ErrInvalidGoogleToken)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.ErrInvalidGoogleToken)
	}

	token, user, err := h.authService.GoogleLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: user.Public()})
}

// respondError maps a domain error to a {msg} body. Unexpected errors are
// logged server-side and surfaced as a generic 500 with no detail.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

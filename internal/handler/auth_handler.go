package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "foodorder/internal/errors"
	"foodorder/internal/model"
	"foodorder/internal/service"
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
// Role defaults to customer. Any role, admin included, may be chosen at
// self-registration.
type RegisterRequest struct {
	Email    string     `json:"email" validate:"required,email,max=255"`
	Password string     `json:"password" validate:"required,max=72"`
	Name     string     `json:"name" validate:"required,max=255"`
	Role     model.Role `json:"role" validate:"omitempty,oneof=customer restaurant_owner admin"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "registration failed")
	}

	return c.JSON(http.StatusCreated, UserResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "login failed")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// Profile godoc
// @Summary Current user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get profile")
	}

	user, err := h.authService.Profile(c.Request().Context(), caller.UserID)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get profile")
	}

	return c.JSON(http.StatusOK, UserResponse{
		Message: "Profile retrieved successfully",
		User:    user,
	})
}

// Logout godoc
// @Summary Revoke the presented token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	cl, err := claims(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "logout failed")
	}

	if err := h.authService.Logout(c.Request().Context(), cl); err != nil {
		return apperrors.MapErrorToHTTP(err, "logout failed")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

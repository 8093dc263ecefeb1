package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "foodorder/internal/errors"
	"foodorder/internal/model"
	"foodorder/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateUserRequest is a partial user update. Omitted fields are unchanged.
type UpdateUserRequest struct {
	Name  *string     `json:"name" validate:"omitempty,min=1,max=255"`
	Email *string     `json:"email" validate:"omitempty,email,max=255"`
	Role  *model.Role `json:"role" validate:"omitempty,oneof=customer restaurant_owner admin"`
}

// UserListResponse wraps a list of users.
type UserListResponse struct {
	Message string       `json:"message"`
	Users   []model.User `json:"users"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get users")
	}

	users, err := h.svc.List(c.Request().Context(), caller)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get users")
	}
	return c.JSON(http.StatusOK, UserListResponse{Message: "Users retrieved successfully", Users: users})
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get user")
	}

	user, err := h.svc.Get(c.Request().Context(), caller, id)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get user")
	}
	return c.JSON(http.StatusOK, UserResponse{Message: "User retrieved successfully", User: user})
}

// UpdateUser godoc
// @Summary Update user
// @Description Self or admin. Only admins may change the role.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to update user")
	}

	var req UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.svc.Update(c.Request().Context(), caller, id, service.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to update user")
	}
	return c.JSON(http.StatusOK, UserResponse{Message: "User updated successfully", User: user})
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to delete user")
	}

	if err := h.svc.Delete(c.Request().Context(), caller, id); err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to delete user")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

package handlers

import (
	"garderie-api/internal/core/services"
	"garderie-api/internal/pkg/pagination"
	"garderie-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers handles listing all users (Admin only)
// @Summary List users
// @Description Get a paginated list of staff accounts (Admin only)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param role query string false "admin or tata"
// @Param search query string false "Name or email"
// @Param isActive query bool false "Active flag"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} services.ListUsersOutput
// @Failure 401 {object} response.Message
// @Failure 403 {object} response.Message
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return handleError(c, err)
	}

	result, err := h.userService.List(c.UserContext(), &services.ListUsersInput{
		Role:     c.Query("role"),
		Search:   c.Query("search"),
		IsActive: isActive,
		Page:     pagination.GetParams(c),
	})
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, result)
}

// GetUser handles getting a user by ID (Admin only)
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} response.Message
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	user, err := h.userService.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, user)
}

// CreateUser creates a staff account (Admin only)
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	user, err := h.userService.Create(c.UserContext(), &input)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, user)
}

// UpdateUser edits a staff account (Admin only)
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	var input services.UpdateUserInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	user, err := h.userService.Update(c.UserContext(), id, &input)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, user)
}

// DeleteUser handles deleting a user (Admin only)
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}
	currentUserID, err := currentUser(c)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.userService.Delete(c.UserContext(), id, currentUserID); err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Utilisateur supprimé avec succès")
}

// ResetPassword sets a new password for a user (Admin only)
// @Summary Reset user password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.ResetPasswordInput true "New password"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /users/{id}/reset-password [put]
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	var input services.ResetPasswordInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	if err := h.userService.ResetPassword(c.UserContext(), id, &input); err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Mot de passe réinitialisé avec succès")
}

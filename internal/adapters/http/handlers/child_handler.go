package handlers

import (
	"garderie-api/internal/core/services"
	"garderie-api/internal/pkg/pagination"
	"garderie-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChildHandler handles enrolled children endpoints
type ChildHandler struct {
	childService *services.ChildService
}

// NewChildHandler creates a new child handler
func NewChildHandler(childService *services.ChildService) *ChildHandler {
	return &ChildHandler{childService: childService}
}

// ListChildren lists children
// @Summary List children
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Param search query string false "First, last or guardian name"
// @Param class query string false "Class"
// @Param paymentMode query string false "Payment mode"
// @Param isActive query bool false "Active flag"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} services.ListChildrenOutput
// @Router /children [get]
func (h *ChildHandler) ListChildren(c *fiber.Ctx) error {
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return handleError(c, err)
	}

	result, err := h.childService.List(c.UserContext(), &services.ListChildrenInput{
		Search:      c.Query("search"),
		Class:       c.Query("class"),
		PaymentMode: c.Query("paymentMode"),
		IsActive:    isActive,
		Page:        pagination.GetParams(c),
	})
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, result)
}

// GetChild gets a child
// @Summary Get child by ID
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Success 200 {object} models.Child
// @Failure 404 {object} response.Message
// @Router /children/{id} [get]
func (h *ChildHandler) GetChild(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	child, err := h.childService.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, child)
}

// CreateChild enrolls a child
// @Summary Enroll child
// @Tags Children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateChildInput true "Child"
// @Success 201 {object} models.Child
// @Failure 400 {object} response.Message
// @Router /children [post]
func (h *ChildHandler) CreateChild(c *fiber.Ctx) error {
	var input services.CreateChildInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	child, err := h.childService.Create(c.UserContext(), &input)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, child)
}

// UpdateChild edits a child
// @Summary Update child
// @Tags Children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Param body body services.UpdateChildInput true "Fields to change"
// @Success 200 {object} models.Child
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /children/{id} [put]
func (h *ChildHandler) UpdateChild(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	var input services.UpdateChildInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	child, err := h.childService.Update(c.UserContext(), id, &input)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, child)
}

// DeleteChild removes a child (Admin only)
// @Summary Delete child
// @Tags Children
// @Produce json
// @Security BearerAuth
// @Param id path int true "Child ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /children/{id} [delete]
func (h *ChildHandler) DeleteChild(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.childService.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Enfant supprimé avec succès")
}

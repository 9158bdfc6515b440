package handlers

import (
	"garderie-api/internal/core/services"
	"garderie-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles weekly menu endpoints
type MenuHandler struct {
	menuService *services.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// ListMenus lists menus, newest week first
// @Summary List menus
// @Tags Menus
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Menu
// @Router /menus [get]
func (h *MenuHandler) ListMenus(c *fiber.Ctx) error {
	menus, err := h.menuService.List(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, menus)
}

// CurrentMenu returns the menu of the current week
// @Summary Current week's menu
// @Tags Menus
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Menu
// @Failure 404 {object} response.Message
// @Router /menus/current [get]
func (h *MenuHandler) CurrentMenu(c *fiber.Ctx) error {
	menu, err := h.menuService.Current(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, menu)
}

// GetMenu gets a menu
// @Summary Get menu by ID
// @Tags Menus
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu ID"
// @Success 200 {object} models.Menu
// @Failure 404 {object} response.Message
// @Router /menus/{id} [get]
func (h *MenuHandler) GetMenu(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	menu, err := h.menuService.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, menu)
}

// CreateMenu creates a weekly menu
// @Summary Create menu
// @Tags Menus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MenuInput true "Menu"
// @Success 201 {object} models.Menu
// @Failure 400 {object} response.Message
// @Router /menus [post]
func (h *MenuHandler) CreateMenu(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return handleError(c, err)
	}

	var input services.MenuInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	menu, err := h.menuService.Create(c.UserContext(), &input, userID)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, menu)
}

// UpdateMenu replaces a menu
// @Summary Update menu
// @Tags Menus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu ID"
// @Param body body services.MenuInput true "Menu"
// @Success 200 {object} models.Menu
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /menus/{id} [put]
func (h *MenuHandler) UpdateMenu(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	var input services.MenuInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	menu, err := h.menuService.Update(c.UserContext(), id, &input)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, menu)
}

// DeleteMenu removes a menu (Admin only)
// @Summary Delete menu
// @Tags Menus
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /menus/{id} [delete]
func (h *MenuHandler) DeleteMenu(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.menuService.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Menu supprimé avec succès")
}

// DuplicateMenu copies a menu's meals to another week
// @Summary Duplicate menu
// @Tags Menus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Source menu ID"
// @Param body body services.DuplicateMenuInput true "Target week"
// @Success 201 {object} models.Menu
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /menus/{id}/duplicate [post]
func (h *MenuHandler) DuplicateMenu(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}
	userID, err := currentUser(c)
	if err != nil {
		return handleError(c, err)
	}

	var input services.DuplicateMenuInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	menu, err := h.menuService.Duplicate(c.UserContext(), id, &input, userID)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, menu)
}

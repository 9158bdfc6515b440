package handlers

import (
	"time"

	"garderie-api/internal/adapters/http/middleware"
	"garderie-api/internal/config"
	"garderie-api/internal/core/services"
	"garderie-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RefreshRequest carries the refresh token when no cookie is sent
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// PermissionsResponse lists what the caller's role may do
type PermissionsResponse struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// Login handles user login
// @Summary Login user
// @Description Authenticate a staff member and return tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} response.Message
// @Failure 401 {object} response.Message
// @Failure 403 {object} response.Message
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	result, err := h.authService.Login(c.UserContext(), &input)
	if err != nil {
		return handleError(c, err)
	}

	h.setAuthCookies(c, result.Token, result.RefreshToken)
	return response.OK(c, result)
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Rotate the refresh token (cookie or body) and issue a new access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest false "Refresh token"
// @Success 200 {object} services.AuthResponse
// @Failure 401 {object} response.Message
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := h.refreshTokenOf(c)
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token requis")
	}

	result, err := h.authService.RefreshToken(c.UserContext(), refreshToken)
	if err != nil {
		h.clearAuthCookies(c)
		return handleError(c, err)
	}

	h.setAuthCookies(c, result.Token, result.RefreshToken)
	return response.OK(c, result)
}

// Logout handles user logout
// @Summary Logout user
// @Description Revoke the refresh token and clear cookies
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RefreshRequest false "Refresh token"
// @Success 200 {object} response.Message
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), h.refreshTokenOf(c)); err != nil {
		return handleError(c, err)
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Déconnexion réussie")
}

// Me returns the current user info
// @Summary Get current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} response.Message
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return handleError(c, err)
	}

	user, err := h.authService.Me(c.UserContext(), userID)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, user)
}

// UpdateProfile changes the caller's own name, email or phone
// @Summary Update own profile
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProfileInput true "Profile"
// @Success 200 {object} models.User
// @Failure 400 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return handleError(c, err)
	}

	var input services.ProfileInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), userID, &input)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, user)
}

// ChangePassword changes the caller's password and ends every session
// @Summary Change own password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Passwords"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Message
// @Router /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return handleError(c, err)
	}

	var input services.ChangePasswordInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	if err := h.authService.ChangePassword(c.UserContext(), userID, &input); err != nil {
		return handleError(c, err)
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Mot de passe modifié avec succès")
}

// Permissions lists what the caller's role may do
// @Summary Get own permissions
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PermissionsResponse
// @Router /auth/permissions [get]
func (h *AuthHandler) Permissions(c *fiber.Ctx) error {
	role := middleware.Role(c)
	return response.OK(c, PermissionsResponse{
		Role:        role,
		Permissions: h.authService.Permissions(role),
	})
}

// refreshTokenOf reads the refresh token from the cookie, then the body
func (h *AuthHandler) refreshTokenOf(c *fiber.Ctx) string {
	if token := c.Cookies("refresh_token"); token != "" {
		return token
	}
	var req RefreshRequest
	_ = c.BodyParser(&req)
	return req.RefreshToken
}

// setAuthCookies sets access and refresh token cookies
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/api/v1/auth",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearAuthCookies clears auth cookies
func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-1 * time.Hour)

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  expired,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		Expires:  expired,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

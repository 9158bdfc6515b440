package handlers

import (
	"errors"
	"log"
	"strconv"

	"garderie-api/internal/adapters/http/middleware"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// retryAfterSeconds is sent with every 503
const retryAfterSeconds = 5

// handleError maps a service error to its HTTP response
func handleError(c *fiber.Ctx, err error) error {
	message := err.Error()
	var de *domain.Error
	if errors.As(err, &de) {
		message = de.Message
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Email ou mot de passe incorrect")
	case errors.Is(err, domain.ErrTokenExpired):
		return response.Unauthorized(c, "Token expiré")
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Token invalide")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, message)
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, message)
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, message)
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, message)
	case errors.Is(err, domain.ErrUnavailable):
		return response.ServiceUnavailable(c, message, retryAfterSeconds)
	case errors.Is(err, domain.ErrReceiptFailed):
		return response.InternalServerError(c, domain.ErrReceiptFailed.Error())
	}

	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, "Erreur serveur")
}

// parseID reads the :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.Invalid("Identifiant invalide")
	}
	return uint(id), nil
}

// parseBody decodes the JSON body into out
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Invalid("Corps de requête invalide")
	}
	return nil
}

// currentUser returns the authenticated user's ID
func currentUser(c *fiber.Ctx) (uint, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	return id, nil
}

// queryBool reads an optional boolean query parameter
func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.Invalid("%s must be true or false", key)
	}
	return &v, nil
}

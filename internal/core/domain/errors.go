package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map a kind to an HTTP status with errors.Is.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrUnavailable        = errors.New("temporarily unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Error carries a client-facing message and the kind it belongs to
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound builds a not-found error
func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Invalid builds a validation error
func Invalid(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a duplicate-entry error
func Conflict(message string) error {
	return &Error{Kind: ErrDuplicateEntry, Message: message}
}

// Forbidden builds a forbidden error
func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// Unavailable builds a retryable error
func Unavailable(message string) error {
	return &Error{Kind: ErrUnavailable, Message: message}
}

// User errors
var (
	ErrUserNotFound       = NotFound("Utilisateur non trouvé")
	ErrEmailAlreadyExists = Conflict("Cet email est déjà utilisé")
	ErrCannotDeleteSelf   = Forbidden("Vous ne pouvez pas supprimer votre propre compte")
	ErrUserInactive       = Forbidden("Compte désactivé")
	ErrWrongPassword      = Invalid("Mot de passe actuel incorrect")
)

// Child errors
var (
	ErrChildNotFound = NotFound("Enfant non trouvé")
	ErrChildInactive = Invalid("Cet enfant n'est plus inscrit")
)

// Payment errors
var (
	ErrPaymentNotFound       = NotFound("Paiement non trouvé")
	ErrReceiptNumberConflict = Conflict("Numéro de reçu déjà utilisé")
	ErrReceiptFailed         = errors.New("Erreur lors de la génération du reçu")
	ErrReceiptTimeout        = Unavailable("La génération du reçu a expiré, veuillez réessayer")
)

// Menu errors
var (
	ErrMenuNotFound        = NotFound("Menu non trouvé")
	ErrNoCurrentMenu       = NotFound("Aucun menu pour cette semaine")
	ErrInvalidMenuInterval = Invalid("La date de fin doit être postérieure à la date de début")
)

// Attendance errors
var (
	ErrAttendanceNotFound = NotFound("Présence non trouvée")
	ErrAlreadyPresent     = Conflict("Présence déjà enregistrée pour cet enfant aujourd'hui")
	ErrAlreadyCheckedOut  = Conflict("Départ déjà enregistré")
)

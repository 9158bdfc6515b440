package repositories

import (
	"context"
	"time"

	"garderie-api/internal/adapters/persistence/models"
)

// UserFilter narrows user listings
type UserFilter struct {
	Role     string
	Search   string
	IsActive *bool
}

// ChildFilter narrows child listings
type ChildFilter struct {
	Search      string
	Class       string
	PaymentMode string
	IsActive    *bool
}

// PaymentFilter narrows payment listings. To is exclusive.
type PaymentFilter struct {
	From    *time.Time
	To      *time.Time
	Type    string
	Status  string
	ChildID uint
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter UserFilter, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteStale(ctx context.Context, now time.Time) (int64, error)
}

// ChildRepository defines child repository interface
type ChildRepository interface {
	Create(ctx context.Context, child *models.Child) error
	GetByID(ctx context.Context, id uint) (*models.Child, error)
	Update(ctx context.Context, child *models.Child) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ChildFilter, offset, limit int) ([]*models.Child, int64, error)
	ListActive(ctx context.Context) ([]*models.Child, error)
	CountActive(ctx context.Context) (int64, error)
	CountActiveByClass(ctx context.Context) (map[string]int64, error)
}

// PaymentRepository defines payment repository interface.
// Reads return payments with Child and RecordedBy loaded.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	List(ctx context.Context, filter PaymentFilter, offset, limit int) ([]*models.Payment, int64, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*models.Payment, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Payment, error)
	Recent(ctx context.Context, limit int) ([]*models.Payment, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// MenuRepository defines menu repository interface
type MenuRepository interface {
	Create(ctx context.Context, menu *models.Menu) error
	GetByID(ctx context.Context, id uint) (*models.Menu, error)
	Update(ctx context.Context, menu *models.Menu) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Menu, error)
	// FindCovering returns the newest menu whose week range contains day
	FindCovering(ctx context.Context, day time.Time) (*models.Menu, error)
}

// AttendanceRepository defines attendance repository interface
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	GetByID(ctx context.Context, id uint) (*models.Attendance, error)
	GetByChildAndDate(ctx context.Context, childID uint, day time.Time) (*models.Attendance, error)
	Update(ctx context.Context, attendance *models.Attendance) error
	Delete(ctx context.Context, id uint) error
	ListByDate(ctx context.Context, day time.Time, class string) ([]*models.Attendance, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*models.Attendance, error)
}

// Set bundles every repository the services need
type Set struct {
	Users         UserRepository
	RefreshTokens RefreshTokenRepository
	Children      ChildRepository
	Payments      PaymentRepository
	Menus         MenuRepository
	Attendance    AttendanceRepository
}

package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/dates"
	"garderie-api/internal/pkg/pagination"
	"garderie-api/internal/pkg/validation"

	"gorm.io/gorm"
)

// ChildService manages enrolled children
type ChildService struct {
	childRepo repositories.ChildRepository
	clock     Clock
}

// NewChildService creates a new child service
func NewChildService(childRepo repositories.ChildRepository, clock Clock) *ChildService {
	return &ChildService{childRepo: childRepo, clock: clock}
}

// GuardianInput is the parent contact of a child
type GuardianInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"required,max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

// CreateChildInput represents a new enrollment
type CreateChildInput struct {
	FirstName      string        `json:"firstName" validate:"required,max=100"`
	LastName       string        `json:"lastName" validate:"required,max=100"`
	DateOfBirth    string        `json:"dateOfBirth" validate:"required"`
	Class          string        `json:"class" validate:"required,childclass"`
	PaymentMode    string        `json:"paymentMode" validate:"required,paymentmode"`
	Parent         GuardianInput `json:"parent"`
	EnrollmentDate string        `json:"enrollmentDate"`
	Notes          string        `json:"notes"`
}

// UpdateChildInput represents a partial edit of a child
type UpdateChildInput struct {
	FirstName   *string        `json:"firstName" validate:"omitempty,max=100"`
	LastName    *string        `json:"lastName" validate:"omitempty,max=100"`
	DateOfBirth *string        `json:"dateOfBirth"`
	Class       *string        `json:"class" validate:"omitempty,childclass"`
	PaymentMode *string        `json:"paymentMode" validate:"omitempty,paymentmode"`
	Parent      *GuardianInput `json:"parent"`
	IsActive    *bool          `json:"isActive"`
	Notes       *string        `json:"notes"`
}

// ListChildrenInput represents list filters
type ListChildrenInput struct {
	Search      string
	Class       string
	PaymentMode string
	IsActive    *bool
	Page        pagination.Params
}

// ListChildrenOutput is the paginated children listing
type ListChildrenOutput struct {
	Children []*models.Child `json:"children"`
	pagination.Meta
}

// List lists children
func (s *ChildService) List(ctx context.Context, input *ListChildrenInput) (*ListChildrenOutput, error) {
	filter := repositories.ChildFilter{
		Search:      strings.TrimSpace(input.Search),
		Class:       input.Class,
		PaymentMode: input.PaymentMode,
		IsActive:    input.IsActive,
	}
	children, total, err := s.childRepo.List(ctx, filter, input.Page.Offset, input.Page.Limit)
	if err != nil {
		return nil, err
	}
	return &ListChildrenOutput{Children: children, Meta: pagination.GetMeta(input.Page, total)}, nil
}

// Get gets a child by ID
func (s *ChildService) Get(ctx context.Context, id uint) (*models.Child, error) {
	child, err := s.childRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChildNotFound
		}
		return nil, err
	}
	return child, nil
}

// Create enrolls a child
func (s *ChildService) Create(ctx context.Context, input *CreateChildInput) (*models.Child, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	dob, err := s.parseBirthDate(input.DateOfBirth)
	if err != nil {
		return nil, err
	}

	enrolled := s.clock.now()
	if input.EnrollmentDate != "" {
		enrolled, err = dates.ParseDay(input.EnrollmentDate, s.clock.Location)
		if err != nil {
			return nil, domain.Invalid("enrollmentDate must be a date (YYYY-MM-DD)")
		}
	}

	child := &models.Child{
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		DateOfBirth:    dates.Calendar(dob),
		Class:          input.Class,
		PaymentMode:    input.PaymentMode,
		Parent:         guardian(input.Parent),
		IsActive:       true,
		EnrollmentDate: enrolled,
		Notes:          input.Notes,
	}
	if err := s.childRepo.Create(ctx, child); err != nil {
		return nil, err
	}

	log.Printf("🧒 Child enrolled: %s (%s)", child.FullName(), child.Class)
	return child, nil
}

// Update edits a child
func (s *ChildService) Update(ctx context.Context, id uint, input *UpdateChildInput) (*models.Child, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	child, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		child.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		child.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.DateOfBirth != nil {
		dob, err := s.parseBirthDate(*input.DateOfBirth)
		if err != nil {
			return nil, err
		}
		child.DateOfBirth = dates.Calendar(dob)
	}
	if input.Class != nil {
		child.Class = *input.Class
	}
	if input.PaymentMode != nil {
		child.PaymentMode = *input.PaymentMode
	}
	if input.Parent != nil {
		child.Parent = guardian(*input.Parent)
	}
	if input.IsActive != nil {
		child.IsActive = *input.IsActive
	}
	if input.Notes != nil {
		child.Notes = *input.Notes
	}

	if err := s.childRepo.Update(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

// Delete removes a child
func (s *ChildService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.childRepo.Delete(ctx, id)
}

func (s *ChildService) parseBirthDate(value string) (t time.Time, err error) {
	t, err = dates.ParseDay(value, s.clock.Location)
	if err != nil {
		return t, domain.Invalid("dateOfBirth must be a date (YYYY-MM-DD)")
	}
	if t.After(s.clock.today()) {
		return t, domain.Invalid("dateOfBirth cannot be in the future")
	}
	return t, nil
}

func guardian(in GuardianInput) models.Guardian {
	return models.Guardian{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Address: strings.TrimSpace(in.Address),
	}
}

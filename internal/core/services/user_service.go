package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/pagination"
	"garderie-api/internal/pkg/password"
	"garderie-api/internal/pkg/validation"

	"gorm.io/gorm"
)

// UserService handles staff account management
type UserService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Role     string
	Search   string
	IsActive *bool
	Page     pagination.Params
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users []*models.User `json:"users"`
	pagination.Meta
}

// CreateUserInput represents a new staff account
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,role"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// UpdateUserInput represents an admin edit of a staff account
type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,role"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	IsActive *bool   `json:"isActive"`
}

// ResetPasswordInput represents an admin password reset
type ResetPasswordInput struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// List lists users with filters and pagination
func (s *UserService) List(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	filter := repositories.UserFilter{
		Role:     input.Role,
		Search:   strings.TrimSpace(input.Search),
		IsActive: input.IsActive,
	}
	users, total, err := s.userRepo.List(ctx, filter, input.Page.Offset, input.Page.Limit)
	if err != nil {
		return nil, err
	}
	return &ListUsersOutput{
		Users: users,
		Meta:  pagination.GetMeta(input.Page, total),
	}, nil
}

// Get gets a user by ID
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create creates a staff account
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
		Phone:    strings.TrimSpace(input.Phone),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	log.Printf("👤 User created: %s (%s)", user.Email, user.Role)
	return user, nil
}

// Update applies an admin edit. A deactivated user loses every session.
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.User, error) {
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		input.Email = &email
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	deactivated := false
	if input.IsActive != nil {
		deactivated = user.IsActive && !*input.IsActive
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	if deactivated {
		if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// Delete removes a staff account. Users cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, id, currentUserID uint) error {
	if id == currentUserID {
		return domain.ErrCannotDeleteSelf
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, id); err != nil {
		return err
	}

	log.Printf("🗑️ User deleted: ID %d", id)
	return s.userRepo.Delete(ctx, id)
}

// ResetPassword sets a new password chosen by an admin
func (s *UserService) ResetPassword(ctx context.Context, id uint, input *ResetPasswordInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, id)
}

package services

import (
	"context"
	"errors"
	"log"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/dates"
	"garderie-api/internal/pkg/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MenuService manages weekly menus
type MenuService struct {
	menuRepo repositories.MenuRepository
	clock    Clock
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repositories.MenuRepository, clock Clock) *MenuService {
	return &MenuService{menuRepo: menuRepo, clock: clock}
}

// MenuInput represents a menu to create or replace
type MenuInput struct {
	WeekStartDate string           `json:"weekStartDate" validate:"required"`
	WeekEndDate   string           `json:"weekEndDate" validate:"required"`
	Meals         models.WeekMeals `json:"meals"`
	IsActive      *bool            `json:"isActive"`
}

// DuplicateMenuInput represents the target week of a copy
type DuplicateMenuInput struct {
	WeekStartDate string `json:"weekStartDate" validate:"required"`
	WeekEndDate   string `json:"weekEndDate" validate:"required"`
}

// List returns every menu, newest week first
func (s *MenuService) List(ctx context.Context) ([]*models.Menu, error) {
	menus, err := s.menuRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if menus == nil {
		menus = []*models.Menu{}
	}
	return menus, nil
}

// Get gets a menu by ID
func (s *MenuService) Get(ctx context.Context, id uint) (*models.Menu, error) {
	menu, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, err
	}
	return menu, nil
}

// Current returns the menu whose week contains today
func (s *MenuService) Current(ctx context.Context) (*models.Menu, error) {
	menu, err := s.menuRepo.FindCovering(ctx, s.clock.today())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoCurrentMenu
		}
		return nil, err
	}
	return menu, nil
}

// Create stores a new menu
func (s *MenuService) Create(ctx context.Context, input *MenuInput, createdBy uint) (*models.Menu, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	start, end, err := s.parseWeek(input.WeekStartDate, input.WeekEndDate)
	if err != nil {
		return nil, err
	}

	menu := &models.Menu{
		WeekStartDate: start,
		WeekEndDate:   end,
		Meals:         datatypes.NewJSONType(input.Meals),
		CreatedByID:   createdBy,
		IsActive:      input.IsActive == nil || *input.IsActive,
	}
	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return nil, err
	}

	log.Printf("🍽️ Menu created for week %s", start.Format(dates.DayLayout))
	return s.Get(ctx, menu.ID)
}

// Update replaces the week range and meals of a menu
func (s *MenuService) Update(ctx context.Context, id uint, input *MenuInput) (*models.Menu, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	start, end, err := s.parseWeek(input.WeekStartDate, input.WeekEndDate)
	if err != nil {
		return nil, err
	}

	menu, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	menu.WeekStartDate = start
	menu.WeekEndDate = end
	menu.Meals = datatypes.NewJSONType(input.Meals)
	if input.IsActive != nil {
		menu.IsActive = *input.IsActive
	}
	if err := s.menuRepo.Update(ctx, menu); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a menu
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMenuNotFound
		}
		return err
	}
	return nil
}

// Duplicate copies the meals of menu id to a new week. The source is left unchanged.
func (s *MenuService) Duplicate(ctx context.Context, id uint, input *DuplicateMenuInput, createdBy uint) (*models.Menu, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	start, end, err := s.parseWeek(input.WeekStartDate, input.WeekEndDate)
	if err != nil {
		return nil, err
	}

	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	menu := &models.Menu{
		WeekStartDate: start,
		WeekEndDate:   end,
		Meals:         datatypes.NewJSONType(source.Meals.Data()),
		CreatedByID:   createdBy,
		IsActive:      true,
	}
	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return nil, err
	}
	return s.Get(ctx, menu.ID)
}

func (s *MenuService) parseWeek(startValue, endValue string) (start, end time.Time, err error) {
	if start, err = dates.ParseDay(startValue, s.clock.Location); err != nil {
		return start, end, domain.Invalid("weekStartDate must be a date (YYYY-MM-DD)")
	}
	if end, err = dates.ParseDay(endValue, s.clock.Location); err != nil {
		return start, end, domain.Invalid("weekEndDate must be a date (YYYY-MM-DD)")
	}
	if end.Before(start) {
		return start, end, domain.ErrInvalidMenuInterval
	}
	return start, end, nil
}

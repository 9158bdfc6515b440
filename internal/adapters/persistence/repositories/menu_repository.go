package repositories

import (
	"context"
	"time"

	"garderie-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Omit("CreatedBy").Create(menu).Error
}

func (r *menuRepository) GetByID(ctx context.Context, id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.db.WithContext(ctx).Preload("CreatedBy").Where("id = ?", id).First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) Update(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Omit("CreatedBy").Save(menu).Error
}

func (r *menuRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Menu{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns every menu, newest week first
func (r *menuRepository) List(ctx context.Context) ([]*models.Menu, error) {
	var menus []*models.Menu
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Order("week_start_date DESC").
		Find(&menus).Error
	return menus, err
}

// FindCovering matches on the calendar day: start <= day and end >= day
func (r *menuRepository) FindCovering(ctx context.Context, day time.Time) (*models.Menu, error) {
	var menu models.Menu
	next := day.AddDate(0, 0, 1)
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("week_start_date < ? AND week_end_date >= ?", next, day).
		Order("week_start_date DESC").
		First(&menu).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

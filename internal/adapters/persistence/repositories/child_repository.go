package repositories

import (
	"context"

	"garderie-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type childRepository struct {
	db *gorm.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *gorm.DB) ChildRepository {
	return &childRepository{db: db}
}

func (r *childRepository) Create(ctx context.Context, child *models.Child) error {
	return mapWriteError(r.db.WithContext(ctx).Create(child).Error)
}

func (r *childRepository) GetByID(ctx context.Context, id uint) (*models.Child, error) {
	var child models.Child
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&child).Error; err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *childRepository) Update(ctx context.Context, child *models.Child) error {
	return mapWriteError(r.db.WithContext(ctx).Save(child).Error)
}

func (r *childRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Child{}, id).Error
}

// List lists children sorted by last then first name
func (r *childRepository) List(ctx context.Context, filter ChildFilter, offset, limit int) ([]*models.Child, int64, error) {
	var children []*models.Child
	var total int64

	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Child{})
		if filter.Class != "" {
			q = q.Where("class = ?", filter.Class)
		}
		if filter.PaymentMode != "" {
			q = q.Where("payment_mode = ?", filter.PaymentMode)
		}
		if filter.IsActive != nil {
			q = q.Where("is_active = ?", *filter.IsActive)
		}
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			q = q.Where("first_name LIKE ? OR last_name LIKE ? OR parent_name LIKE ?", like, like, like)
		}
		return q
	}

	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := scoped().Order("last_name ASC, first_name ASC").Offset(offset).Limit(limit).Find(&children).Error; err != nil {
		return nil, 0, err
	}
	return children, total, nil
}

func (r *childRepository) ListActive(ctx context.Context) ([]*models.Child, error) {
	var children []*models.Child
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("last_name ASC, first_name ASC").
		Find(&children).Error
	return children, err
}

func (r *childRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Child{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// CountActiveByClass groups active children by class
func (r *childRepository) CountActiveByClass(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Class string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Child{}).
		Select("class, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("class").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Class] = row.Count
	}
	return out, nil
}

package repositories

import (
	"context"
	"time"

	"garderie-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// expanded preloads the child and the recording user
func (r *paymentRepository) expanded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Child").Preload("RecordedBy")
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return mapWriteError(r.db.WithContext(ctx).Omit("Child", "RecordedBy").Create(payment).Error)
}

func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.expanded(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdateStatus is the only write allowed on an existing payment
func (r *paymentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List lists payments newest first
func (r *paymentRepository) List(ctx context.Context, filter PaymentFilter, offset, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	scoped := func(q *gorm.DB) *gorm.DB {
		q = q.Model(&models.Payment{})
		if filter.From != nil {
			q = q.Where("payment_date >= ?", *filter.From)
		}
		if filter.To != nil {
			q = q.Where("payment_date < ?", *filter.To)
		}
		if filter.Type != "" {
			q = q.Where("type = ?", filter.Type)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.ChildID != 0 {
			q = q.Where("child_id = ?", filter.ChildID)
		}
		return q
	}

	if err := scoped(r.db.WithContext(ctx)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := scoped(r.expanded(ctx)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// ListBetween returns payments with from <= paymentDate < to, oldest first
func (r *paymentRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.expanded(ctx).
		Where("payment_date >= ? AND payment_date < ?", from, to).
		Order("payment_date ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByStatus(ctx context.Context, status string) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("payment_date ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Recent(ctx context.Context, limit int) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.expanded(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/core/domain"

	"gorm.io/gorm"
)

type paymentRepository struct {
	s *Store
}

// expand attaches the child and the recording user. Callers hold a lock.
func (r *paymentRepository) expand(p models.Payment) *models.Payment {
	p.Child = r.s.childRef(p.ChildID)
	p.RecordedBy = r.s.userRef(p.RecordedByID)
	return &p
}

func (r *paymentRepository) Create(_ context.Context, payment *models.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.payments {
		if p.ReceiptNumber == payment.ReceiptNumber {
			return fmt.Errorf("%w: payments.receipt_number", domain.ErrDuplicateEntry)
		}
	}
	payment.ID = r.s.id("payments")
	stamp(&payment.CreatedAt, &payment.UpdatedAt)

	stored := *payment
	stored.Child, stored.RecordedBy = nil, nil
	r.s.payments[payment.ID] = stored
	return nil
}

func (r *paymentRepository) GetByID(_ context.Context, id uint) (*models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.expand(p), nil
}

func (r *paymentRepository) UpdateStatus(_ context.Context, id uint, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.payments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	r.s.payments[id] = p
	return nil
}

func (r *paymentRepository) collect(keep func(models.Payment) bool) []*models.Payment {
	var out []*models.Payment
	for _, p := range r.s.payments {
		if keep(p) {
			out = append(out, r.expand(p))
		}
	}
	return out
}

func (r *paymentRepository) List(_ context.Context, filter repositories.PaymentFilter, offset, limit int) ([]*models.Payment, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.collect(func(p models.Payment) bool {
		if filter.From != nil && p.PaymentDate.Before(*filter.From) {
			return false
		}
		if filter.To != nil && !p.PaymentDate.Before(*filter.To) {
			return false
		}
		if filter.Type != "" && p.Type != filter.Type {
			return false
		}
		if filter.Status != "" && p.Status != filter.Status {
			return false
		}
		if filter.ChildID != 0 && p.ChildID != filter.ChildID {
			return false
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *paymentRepository) ListBetween(_ context.Context, from, to time.Time) ([]*models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.collect(func(p models.Payment) bool {
		return !p.PaymentDate.Before(from) && p.PaymentDate.Before(to)
	})
	sortByPaymentDate(out)
	return out, nil
}

func (r *paymentRepository) ListByStatus(_ context.Context, status string) ([]*models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.collect(func(p models.Payment) bool { return p.Status == status })
	sortByPaymentDate(out)
	return out, nil
}

func (r *paymentRepository) Recent(_ context.Context, limit int) ([]*models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.collect(func(models.Payment) bool { return true })
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return page(out, 0, limit), nil
}

func (r *paymentRepository) CountByStatus(_ context.Context, status string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, p := range r.s.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func sortByPaymentDate(payments []*models.Payment) {
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].PaymentDate.Equal(payments[j].PaymentDate) {
			return payments[i].PaymentDate.Before(payments[j].PaymentDate)
		}
		return payments[i].ID < payments[j].ID
	})
}

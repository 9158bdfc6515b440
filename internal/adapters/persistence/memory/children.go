package memory

import (
	"context"
	"sort"
	"strings"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

type childRepository struct {
	s *Store
}

func (r *childRepository) Create(_ context.Context, child *models.Child) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	child.ID = r.s.id("children")
	stamp(&child.CreatedAt, &child.UpdatedAt)
	r.s.children[child.ID] = *child
	return nil
}

func (r *childRepository) GetByID(_ context.Context, id uint) (*models.Child, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if c := r.s.childRef(id); c != nil {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *childRepository) Update(_ context.Context, child *models.Child) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.children[child.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stamp(&child.CreatedAt, &child.UpdatedAt)
	r.s.children[child.ID] = *child
	return nil
}

func (r *childRepository) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.children, id)
	return nil
}

func (r *childRepository) sorted(keep func(models.Child) bool) []*models.Child {
	var out []*models.Child
	for _, c := range r.s.children {
		if keep(c) {
			found := c
			out = append(out, &found)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *childRepository) List(_ context.Context, filter repositories.ChildFilter, offset, limit int) ([]*models.Child, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	out := r.sorted(func(c models.Child) bool {
		if filter.Class != "" && c.Class != filter.Class {
			return false
		}
		if filter.PaymentMode != "" && c.PaymentMode != filter.PaymentMode {
			return false
		}
		if filter.IsActive != nil && c.IsActive != *filter.IsActive {
			return false
		}
		if search == "" {
			return true
		}
		for _, field := range []string{c.FirstName, c.LastName, c.Parent.Name} {
			if strings.Contains(strings.ToLower(field), search) {
				return true
			}
		}
		return false
	})
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *childRepository) ListActive(_ context.Context) ([]*models.Child, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.sorted(func(c models.Child) bool { return c.IsActive }), nil
}

func (r *childRepository) CountActive(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, c := range r.s.children {
		if c.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *childRepository) CountActiveByClass(_ context.Context) (map[string]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[string]int64)
	for _, c := range r.s.children {
		if c.IsActive {
			out[c.Class]++
		}
	}
	return out, nil
}

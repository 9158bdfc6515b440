package memory

import (
	"context"
	"sort"
	"time"

	"garderie-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type menuRepository struct {
	s *Store
}

func (r *menuRepository) expand(m models.Menu) *models.Menu {
	m.CreatedBy = r.s.userRef(m.CreatedByID)
	return &m
}

func (r *menuRepository) Create(_ context.Context, menu *models.Menu) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	menu.ID = r.s.id("menus")
	stamp(&menu.CreatedAt, &menu.UpdatedAt)
	stored := *menu
	stored.CreatedBy = nil
	r.s.menus[menu.ID] = stored
	return nil
}

func (r *menuRepository) GetByID(_ context.Context, id uint) (*models.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.menus[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.expand(m), nil
}

func (r *menuRepository) Update(_ context.Context, menu *models.Menu) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.menus[menu.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stamp(&menu.CreatedAt, &menu.UpdatedAt)
	stored := *menu
	stored.CreatedBy = nil
	r.s.menus[menu.ID] = stored
	return nil
}

func (r *menuRepository) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.menus[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.menus, id)
	return nil
}

func (r *menuRepository) newestFirst() []*models.Menu {
	out := make([]*models.Menu, 0, len(r.s.menus))
	for _, m := range r.s.menus {
		out = append(out, r.expand(m))
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].WeekStartDate, out[j].WeekStartDate, out[i].ID, out[j].ID)
	})
	return out
}

func (r *menuRepository) List(_ context.Context) ([]*models.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.newestFirst(), nil
}

func (r *menuRepository) FindCovering(_ context.Context, day time.Time) (*models.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	next := day.AddDate(0, 0, 1)
	for _, m := range r.newestFirst() {
		if m.WeekStartDate.Before(next) && !m.WeekEndDate.Before(day) {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

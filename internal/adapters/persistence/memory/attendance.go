package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/core/domain"

	"gorm.io/gorm"
)

type attendanceRepository struct {
	s *Store
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (r *attendanceRepository) expand(a models.Attendance) *models.Attendance {
	a.Child = r.s.childRef(a.ChildID)
	a.RecordedBy = r.s.userRef(a.RecordedByID)
	return &a
}

func (r *attendanceRepository) Create(_ context.Context, attendance *models.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := dayKey(time.Time(attendance.Date))
	for _, a := range r.s.attendances {
		if a.ChildID == attendance.ChildID && dayKey(time.Time(a.Date)) == key {
			return fmt.Errorf("%w: idx_attendance_child_date", domain.ErrDuplicateEntry)
		}
	}
	attendance.ID = r.s.id("attendances")
	stamp(&attendance.CreatedAt, &attendance.UpdatedAt)
	stored := *attendance
	stored.Child, stored.RecordedBy = nil, nil
	r.s.attendances[attendance.ID] = stored
	return nil
}

func (r *attendanceRepository) GetByID(_ context.Context, id uint) (*models.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.attendances[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.expand(a), nil
}

func (r *attendanceRepository) GetByChildAndDate(_ context.Context, childID uint, day time.Time) (*models.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	key := dayKey(day)
	for _, a := range r.s.attendances {
		if a.ChildID == childID && dayKey(time.Time(a.Date)) == key {
			found := a
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *attendanceRepository) Update(_ context.Context, attendance *models.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.attendances[attendance.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stamp(&attendance.CreatedAt, &attendance.UpdatedAt)
	stored := *attendance
	stored.Child, stored.RecordedBy = nil, nil
	r.s.attendances[attendance.ID] = stored
	return nil
}

func (r *attendanceRepository) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.attendances[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.attendances, id)
	return nil
}

func (r *attendanceRepository) ListByDate(_ context.Context, day time.Time, class string) ([]*models.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	key := dayKey(day)
	var out []*models.Attendance
	for _, a := range r.s.attendances {
		if dayKey(time.Time(a.Date)) != key {
			continue
		}
		expanded := r.expand(a)
		if class != "" && (expanded.Child == nil || expanded.Child.Class != class) {
			continue
		}
		out = append(out, expanded)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckInTime.Equal(out[j].CheckInTime) {
			return out[i].CheckInTime.Before(out[j].CheckInTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *attendanceRepository) ListBetween(_ context.Context, from, to time.Time) ([]*models.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	lo, hi := dayKey(from), dayKey(to)
	var out []*models.Attendance
	for _, a := range r.s.attendances {
		k := dayKey(time.Time(a.Date))
		if k >= lo && k < hi {
			found := a
			out = append(out, &found)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return time.Time(out[i].Date).Before(time.Time(out[j].Date))
	})
	return out, nil
}

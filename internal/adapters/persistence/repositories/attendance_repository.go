package repositories

import (
	"context"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/pkg/dates"

	"gorm.io/gorm"
)

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) expanded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Child").Preload("RecordedBy")
}

// Create relies on idx_attendance_child_date to reject a second row for the same day
func (r *attendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	return mapWriteError(r.db.WithContext(ctx).Omit("Child", "RecordedBy").Create(attendance).Error)
}

func (r *attendanceRepository) GetByID(ctx context.Context, id uint) (*models.Attendance, error) {
	var attendance models.Attendance
	if err := r.expanded(ctx).Where("id = ?", id).First(&attendance).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) GetByChildAndDate(ctx context.Context, childID uint, day time.Time) (*models.Attendance, error) {
	var attendance models.Attendance
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND date = ?", childID, dates.Calendar(day)).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	return r.db.WithContext(ctx).Omit("Child", "RecordedBy").Save(attendance).Error
}

func (r *attendanceRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Attendance{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByDate lists one day's records, optionally restricted to a class
func (r *attendanceRepository) ListByDate(ctx context.Context, day time.Time, class string) ([]*models.Attendance, error) {
	var attendances []*models.Attendance
	q := r.expanded(ctx).Where("attendances.date = ?", dates.Calendar(day))
	if class != "" {
		q = q.Joins("JOIN children ON children.id = attendances.child_id").
			Where("children.class = ?", class)
	}
	err := q.Order("attendances.check_in_time ASC").Find(&attendances).Error
	return attendances, err
}

// ListBetween returns records with from <= date < to
func (r *attendanceRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Attendance, error) {
	var attendances []*models.Attendance
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", dates.Calendar(from), dates.Calendar(to)).
		Order("date ASC").
		Find(&attendances).Error
	return attendances, err
}

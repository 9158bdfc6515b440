package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/dates"
	"garderie-api/internal/pkg/validation"

	"gorm.io/gorm"
)

const weekDays = 7

// AttendanceService records daily check-ins and check-outs
type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	childRepo      repositories.ChildRepository
	clock          Clock
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	childRepo repositories.ChildRepository,
	clock Clock,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		childRepo:      childRepo,
		clock:          clock,
	}
}

// MarkInput represents a check-in
type MarkInput struct {
	ChildID uint   `json:"childId" validate:"required"`
	Notes   string `json:"notes" validate:"max=500"`
}

// AttendanceList wraps one day of attendance
type AttendanceList struct {
	Attendances []*models.Attendance `json:"attendances"`
}

// ChildPresence is an active child with today's presence flag
type ChildPresence struct {
	*models.Child
	IsPresent  bool               `json:"isPresent"`
	Attendance *models.Attendance `json:"attendance,omitempty"`
}

// AttendanceStats summarizes presence on one day
type AttendanceStats struct {
	Date              string       `json:"date"`
	TotalPresent      int          `json:"totalPresent"`
	TotalChildren     int64        `json:"totalChildren"`
	AbsentCount       int64        `json:"absentCount"`
	AttendanceRate    string       `json:"attendanceRate"`
	AttendanceByClass []ClassCount `json:"attendanceByClass"`
	WeeklyStats       []DayCount   `json:"weeklyStats"`
}

// Mark checks a child in for today
func (s *AttendanceService) Mark(ctx context.Context, input *MarkInput, recordedBy uint) (*models.Attendance, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	child, err := s.childRepo.GetByID(ctx, input.ChildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChildNotFound
		}
		return nil, err
	}
	if !child.IsActive {
		return nil, domain.ErrChildInactive
	}

	today := s.clock.today()
	if _, err := s.attendanceRepo.GetByChildAndDate(ctx, child.ID, today); err == nil {
		return nil, domain.ErrAlreadyPresent
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	attendance := &models.Attendance{
		ChildID:      child.ID,
		Date:         dates.Calendar(today),
		CheckInTime:  s.clock.now(),
		RecordedByID: recordedBy,
		Notes:        strings.TrimSpace(input.Notes),
		Status:       string(domain.AttendanceStatusPresent),
	}
	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, domain.ErrAlreadyPresent
		}
		return nil, err
	}
	return s.get(ctx, attendance.ID)
}

// CheckOut records the departure of a checked-in child
func (s *AttendanceService) CheckOut(ctx context.Context, id uint) (*models.Attendance, error) {
	attendance, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if attendance.CheckOutTime != nil {
		return nil, domain.ErrAlreadyCheckedOut
	}

	now := s.clock.now()
	attendance.CheckOutTime = &now
	attendance.Status = string(domain.AttendanceStatusCheckedOut)
	if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

// List returns one day of attendance, optionally for one class
func (s *AttendanceService) List(ctx context.Context, date, class string) (*AttendanceList, error) {
	day, err := s.day(date)
	if err != nil {
		return nil, err
	}
	rows, err := s.attendanceRepo.ListByDate(ctx, day, class)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*models.Attendance{}
	}
	return &AttendanceList{Attendances: rows}, nil
}

// Children lists active children flagged with their presence on date
func (s *AttendanceService) Children(ctx context.Context, date string) ([]ChildPresence, error) {
	day, err := s.day(date)
	if err != nil {
		return nil, err
	}

	children, err := s.childRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.attendanceRepo.ListByDate(ctx, day, "")
	if err != nil {
		return nil, err
	}
	byChild := make(map[uint]*models.Attendance, len(rows))
	for _, a := range rows {
		a.Child = nil
		byChild[a.ChildID] = a
	}

	out := make([]ChildPresence, 0, len(children))
	for _, c := range children {
		a := byChild[c.ID]
		out = append(out, ChildPresence{Child: c, IsPresent: a != nil, Attendance: a})
	}
	return out, nil
}

// Delete removes an attendance record
func (s *AttendanceService) Delete(ctx context.Context, id uint) error {
	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAttendanceNotFound
		}
		return err
	}
	return nil
}

// Stats summarizes presence on date and the seven days ending at date
func (s *AttendanceService) Stats(ctx context.Context, date string) (*AttendanceStats, error) {
	day, err := s.day(date)
	if err != nil {
		return nil, err
	}

	totalChildren, err := s.childRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.attendanceRepo.ListByDate(ctx, day, "")
	if err != nil {
		return nil, err
	}

	byClass := make(map[string]int64)
	for _, a := range rows {
		if a.Child != nil {
			byClass[a.Child.Class]++
		}
	}

	weekStart := day.AddDate(0, 0, -(weekDays - 1))
	week, err := s.attendanceRepo.ListBetween(ctx, weekStart, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	absent := totalChildren - int64(len(rows))
	if absent < 0 {
		absent = 0
	}
	return &AttendanceStats{
		Date:              day.Format(dates.DayLayout),
		TotalPresent:      len(rows),
		TotalChildren:     totalChildren,
		AbsentCount:       absent,
		AttendanceRate:    attendanceRate(len(rows), totalChildren),
		AttendanceByClass: classCounts(byClass),
		WeeklyStats:       weeklyCounts(week, weekStart, weekDays),
	}, nil
}

func (s *AttendanceService) get(ctx context.Context, id uint) (*models.Attendance, error) {
	attendance, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, err
	}
	return attendance, nil
}

func (s *AttendanceService) day(value string) (time.Time, error) {
	if value == "" {
		return s.clock.today(), nil
	}
	day, err := dates.ParseDay(value, s.clock.Location)
	if err != nil {
		return day, domain.Invalid("date must be a date (YYYY-MM-DD)")
	}
	return day, nil
}

// attendanceRate formats present/total as a percentage with one decimal
func attendanceRate(present int, total int64) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(present)*100/float64(total))
}

// weeklyCounts returns one zero-filled count per day starting at first
func weeklyCounts(rows []*models.Attendance, first time.Time, days int) []DayCount {
	out := make([]DayCount, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		key := first.AddDate(0, 0, i).Format(dates.DayLayout)
		out[i] = DayCount{Date: key}
		index[key] = i
	}
	for _, a := range rows {
		if i, ok := index[time.Time(a.Date).Format(dates.DayLayout)]; ok {
			out[i].Count++
		}
	}
	return out
}

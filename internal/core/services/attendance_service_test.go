package services

import (
	"testing"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMarkAttendance(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Crèche", "Journalier")
	svc := NewAttendanceService(f.repos.Attendance, f.repos.Children, f.clock)

	a, err := svc.Mark(f.ctx, &MarkInput{ChildID: child.ID}, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Présent", a.Status)
	assert.True(t, a.CheckInTime.Equal(testNow))
	assert.Nil(t, a.CheckOutTime)

	_, err = svc.Mark(f.ctx, &MarkInput{ChildID: child.ID}, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPresent)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	_, err = svc.Mark(f.ctx, &MarkInput{ChildID: 999}, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrChildNotFound)

	out, err := svc.CheckOut(f.ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOutTime)
	assert.Equal(t, "Parti", out.Status)

	_, err = svc.CheckOut(f.ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedOut)
}

func TestMarkInactiveChild(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Crèche", "Journalier")
	child.IsActive = false
	require.NoError(t, f.repos.Children.Update(f.ctx, child))

	svc := NewAttendanceService(f.repos.Attendance, f.repos.Children, f.clock)
	_, err := svc.Mark(f.ctx, &MarkInput{ChildID: child.ID}, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrChildInactive)
}

func TestAttendanceChildrenAndStats(t *testing.T) {
	f := newFixture(t)
	present := f.child(t, "Crèche", "Journalier")
	f.child(t, "Crèche", "Journalier")
	f.child(t, "Maternelle", "Mensuel")
	svc := NewAttendanceService(f.repos.Attendance, f.repos.Children, f.clock)

	_, err := svc.Mark(f.ctx, &MarkInput{ChildID: present.ID}, f.admin.ID)
	require.NoError(t, err)

	// A visit two days earlier shows in the weekly series only
	require.NoError(t, f.repos.Attendance.Create(f.ctx, &models.Attendance{
		ChildID:     present.ID,
		Date:        datatypes.Date(time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)),
		CheckInTime: testNow.AddDate(0, 0, -2),
		Status:      "Présent",
	}))

	children, err := svc.Children(f.ctx, "")
	require.NoError(t, err)
	require.Len(t, children, 3)
	presentCount := 0
	for _, c := range children {
		if c.IsPresent {
			presentCount++
			assert.Equal(t, present.ID, c.ID)
		}
	}
	assert.Equal(t, 1, presentCount)

	list, err := svc.List(f.ctx, "2024-05-14", "Maternelle")
	require.NoError(t, err)
	assert.Empty(t, list.Attendances)

	stats, err := svc.Stats(f.ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-14", stats.Date)
	assert.Equal(t, 1, stats.TotalPresent)
	assert.EqualValues(t, 3, stats.TotalChildren)
	assert.EqualValues(t, 2, stats.AbsentCount)
	assert.Equal(t, "33.3", stats.AttendanceRate)
	assert.Equal(t, []ClassCount{{Class: "Crèche", Count: 1}}, stats.AttendanceByClass)
	require.Len(t, stats.WeeklyStats, 7)
	assert.Equal(t, DayCount{Date: "2024-05-12", Count: 1}, stats.WeeklyStats[4])
	assert.Equal(t, DayCount{Date: "2024-05-14", Count: 1}, stats.WeeklyStats[6])

	_, err = svc.Stats(f.ctx, "hier")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAttendanceDateEastOfUTC(t *testing.T) {
	f := newFixture(t)
	wat := time.FixedZone("UTC+1", 3600)
	f.clock = FixedClock(time.Date(2024, 5, 14, 0, 30, 0, 0, wat))
	child := f.child(t, "Garderie", "Journalier")
	svc := NewAttendanceService(f.repos.Attendance, f.repos.Children, f.clock)

	a, err := svc.Mark(f.ctx, &MarkInput{ChildID: child.ID}, f.admin.ID)
	require.NoError(t, err)

	v, err := a.Date.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-14", v.(time.Time).In(time.UTC).Format("2006-01-02"))

	stats, err := svc.Stats(f.ctx, "")
	require.NoError(t, err)
	require.Len(t, stats.WeeklyStats, 7)
	assert.Equal(t, "2024-05-14", stats.WeeklyStats[6].Date)
	assert.Equal(t, 1, stats.WeeklyStats[6].Count)
	assert.Equal(t, 1, stats.TotalPresent)
}

package memory

import (
	"context"
	"testing"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestPaymentReceiptNumberIsUnique(t *testing.T) {
	ctx := context.Background()
	set := NewSet()

	require.NoError(t, set.Payments.Create(ctx, &models.Payment{ChildID: 1, Amount: 100, ReceiptNumber: "REC-1"}))
	err := set.Payments.Create(ctx, &models.Payment{ChildID: 1, Amount: 100, ReceiptNumber: "REC-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
}

func TestPaymentsAreExpanded(t *testing.T) {
	ctx := context.Background()
	set := NewSet()

	user := &models.User{Name: "Awa", Email: "awa@garderie.com", Role: "tata"}
	require.NoError(t, set.Users.Create(ctx, user))
	child := &models.Child{FirstName: "Léa", LastName: "Kouassi", Class: "Crèche"}
	require.NoError(t, set.Children.Create(ctx, child))

	p := &models.Payment{ChildID: child.ID, RecordedByID: user.ID, Amount: 5000, ReceiptNumber: "REC-2"}
	require.NoError(t, set.Payments.Create(ctx, p))

	got, err := set.Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Child)
	require.NotNil(t, got.RecordedBy)
	assert.Equal(t, "Léa", got.Child.FirstName)
	assert.Equal(t, "Awa", got.RecordedBy.Name)

	_, err = set.Payments.GetByID(ctx, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPaymentListFilters(t *testing.T) {
	ctx := context.Background()
	set := NewSet()
	day := time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)

	for i, typ := range []string{"Mensuel", "Journalier", "Mensuel"} {
		require.NoError(t, set.Payments.Create(ctx, &models.Payment{
			ChildID:       1,
			Amount:        1000,
			Type:          typ,
			PaymentDate:   day.AddDate(0, 0, i),
			ReceiptNumber: typ + string(rune('a'+i)),
		}))
	}

	from, to := day.AddDate(0, 0, 1), day.AddDate(0, 0, 3)
	items, total, err := set.Payments.List(ctx, repositories.PaymentFilter{From: &from, To: &to}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	items, total, err = set.Payments.List(ctx, repositories.PaymentFilter{Type: "Mensuel"}, 0, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 1)
	assert.Equal(t, uint(3), items[0].ID)
}

func TestAttendanceUniquePerChildAndDay(t *testing.T) {
	ctx := context.Background()
	set := NewSet()
	day := time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)

	require.NoError(t, set.Attendance.Create(ctx, &models.Attendance{ChildID: 1, Date: datatypes.Date(day)}))
	err := set.Attendance.Create(ctx, &models.Attendance{ChildID: 1, Date: datatypes.Date(day)})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	require.NoError(t, set.Attendance.Create(ctx, &models.Attendance{ChildID: 1, Date: datatypes.Date(day.AddDate(0, 0, 1))}))
	require.NoError(t, set.Attendance.Create(ctx, &models.Attendance{ChildID: 2, Date: datatypes.Date(day)}))

	rows, err := set.Attendance.ListBetween(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestMenuFindCovering(t *testing.T) {
	ctx := context.Background()
	set := NewSet()
	monday := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)
	saturday := monday.AddDate(0, 0, 5)

	require.NoError(t, set.Menus.Create(ctx, &models.Menu{WeekStartDate: monday, WeekEndDate: saturday}))

	m, err := set.Menus.FindCovering(ctx, saturday)
	require.NoError(t, err)
	assert.True(t, monday.Equal(m.WeekStartDate))

	_, err = set.Menus.FindCovering(ctx, saturday.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserEmailUnique(t *testing.T) {
	ctx := context.Background()
	set := NewSet()

	require.NoError(t, set.Users.Create(ctx, &models.User{Email: "a@garderie.com"}))
	err := set.Users.Create(ctx, &models.User{Email: "A@garderie.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
}

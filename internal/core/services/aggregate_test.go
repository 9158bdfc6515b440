package services

import (
	"testing"
	"time"

	"garderie-api/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paid(at time.Time, amount int64, method string) *models.Payment {
	return &models.Payment{PaymentDate: at, Amount: amount, PaymentMethod: method, Type: "Mensuel"}
}

func TestGroupPayments(t *testing.T) {
	loc := time.UTC
	payments := []*models.Payment{
		paid(time.Date(2024, 6, 3, 0, 0, 0, 0, loc), 400, "Espèce"),       // Monday, W23
		paid(time.Date(2024, 5, 31, 23, 59, 0, 0, loc), 300, "Virement"), // Friday, W22
		paid(time.Date(2024, 5, 27, 8, 0, 0, 0, loc), 200, "Espèce"),     // Monday, W22
		paid(time.Date(2024, 5, 27, 9, 0, 0, 0, loc), 100, "Espèce"),
	}

	t.Run("day", func(t *testing.T) {
		got := groupPayments(payments, GroupByDay, loc)
		require.Len(t, got, 3)
		assert.Equal(t, "2024-05-27", got[0].Period)
		assert.EqualValues(t, 300, got[0].TotalRevenue)
		assert.Equal(t, 2, got[0].TotalPayments)
		assert.Equal(t, "2024-05-31", got[1].Period)
		assert.Equal(t, "2024-06-03", got[2].Period)
	})

	t.Run("week", func(t *testing.T) {
		got := groupPayments(payments, GroupByWeek, loc)
		require.Len(t, got, 2)
		assert.Equal(t, "2024-W22", got[0].Period)
		assert.EqualValues(t, 600, got[0].TotalRevenue)
		assert.Equal(t, map[string]int64{"Espèce": 300, "Virement": 300}, got[0].PaymentMethods)
		assert.Equal(t, "2024-W23", got[1].Period)
		assert.EqualValues(t, 400, got[1].TotalRevenue)
	})

	t.Run("month", func(t *testing.T) {
		got := groupPayments(payments, GroupByMonth, loc)
		require.Len(t, got, 2)
		assert.Equal(t, "2024-05", got[0].Period)
		assert.Equal(t, 3, got[0].TotalPayments)
		assert.Equal(t, "2024-06", got[1].Period)
	})

	t.Run("empty", func(t *testing.T) {
		got := groupPayments(nil, GroupByDay, loc)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestGroupPaymentsUsesLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	payments := []*models.Payment{
		paid(time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC), 100, "Espèce"),
	}
	got := groupPayments(payments, GroupByMonth, loc)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-06", got[0].Period)
}

func TestRevenueTrend(t *testing.T) {
	loc := time.UTC
	last := time.Date(2024, 5, 14, 15, 0, 0, 0, loc)
	payments := []*models.Payment{
		paid(time.Date(2024, 5, 14, 9, 0, 0, 0, loc), 100, "Espèce"),
		paid(time.Date(2024, 5, 10, 9, 0, 0, 0, loc), 50, "Espèce"),
		paid(time.Date(2024, 5, 10, 11, 0, 0, 0, loc), 25, "Espèce"),
		paid(time.Date(2024, 5, 1, 9, 0, 0, 0, loc), 999, "Espèce"),
	}

	got := revenueTrend(payments, last, 7, loc)
	require.Len(t, got, 7)
	assert.Equal(t, "2024-05-08", got[0].Date)
	assert.Equal(t, "2024-05-14", got[6].Date)
	assert.EqualValues(t, 75, got[2].Revenue)
	assert.Equal(t, 2, got[2].Payments)
	assert.EqualValues(t, 100, got[6].Revenue)
	assert.Zero(t, got[1].Revenue)
}

func TestRevenueByMethodOrder(t *testing.T) {
	got := revenueByMethod([]*models.Payment{
		paid(time.Now(), 10, "Mobile Money"),
		paid(time.Now(), 20, "Espèce"),
		paid(time.Now(), 5, "Mobile Money"),
	})
	require.Len(t, got, 2)
	assert.Equal(t, MethodTotal{Method: "Espèce", Total: 20, Count: 1}, got[0])
	assert.Equal(t, MethodTotal{Method: "Mobile Money", Total: 15, Count: 2}, got[1])
}

func TestAttendanceRate(t *testing.T) {
	assert.Equal(t, "0.0", attendanceRate(0, 0))
	assert.Equal(t, "66.7", attendanceRate(2, 3))
	assert.Equal(t, "100.0", attendanceRate(4, 4))
}

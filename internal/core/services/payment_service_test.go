package services

import (
	"regexp"
	"testing"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePayment(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Maternelle", "Mensuel")
	svc := f.payments()

	p, err := svc.Create(f.ctx, &CreatePaymentInput{
		Child:         child.ID,
		Amount:        300000,
		PaymentMethod: "Virement",
		Period:        strPtr("2024-05"),
	}, f.admin.ID)
	require.NoError(t, err)

	assert.Equal(t, "Mensuel", p.Type)
	assert.Equal(t, "Payé", p.Status)
	require.NotNil(t, p.Period)
	assert.Equal(t, "2024-05", *p.Period)
	assert.Regexp(t, regexp.MustCompile(`^REC-20240514-\d+-[0-9a-f]{6}$`), p.ReceiptNumber)
	require.NotNil(t, p.Child)
	assert.Equal(t, "Yao", p.Child.FirstName)
	require.NotNil(t, p.RecordedBy)
	assert.Equal(t, "Directrice", p.RecordedBy.Name)
	assert.True(t, p.PaymentDate.Equal(testNow))
}

func TestCreatePaymentPeriodRules(t *testing.T) {
	f := newFixture(t)
	monthly := f.child(t, "Crèche", "Mensuel")
	quarterly := f.child(t, "Garderie", "Trimestriel")
	daily := f.child(t, "Tous-Petits", "Journalier")
	svc := f.payments()

	tests := []struct {
		name    string
		child   uint
		period  *string
		want    *string
		wantErr bool
	}{
		{name: "monthly needs a period", child: monthly.ID, wantErr: true},
		{name: "monthly rejects a quarter", child: monthly.ID, period: strPtr("2024-Q2"), wantErr: true},
		{name: "monthly rejects garbage", child: monthly.ID, period: strPtr("mai"), wantErr: true},
		{name: "quarterly accepts lowercase", child: quarterly.ID, period: strPtr("2024-q2"), want: strPtr("2024-Q2")},
		{name: "quarterly rejects a month", child: quarterly.ID, period: strPtr("2024-05"), wantErr: true},
		{name: "quarterly rejects Q5", child: quarterly.ID, period: strPtr("2024-Q5"), wantErr: true},
		{name: "daily drops the period", child: daily.ID, period: strPtr("2024-05")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.Create(f.ctx, &CreatePaymentInput{
				Child:         tt.child,
				Amount:        1000,
				PaymentMethod: "Espèce",
				Period:        tt.period,
			}, f.admin.ID)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Period)
		})
	}
}

func TestCreatePaymentRejections(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Maternelle", "Mensuel")
	svc := f.payments()

	_, err := svc.Create(f.ctx, &CreatePaymentInput{
		Child: 999, Amount: 1000, PaymentMethod: "Espèce", Period: strPtr("2024-05"),
	}, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrChildNotFound)

	_, err = svc.Create(f.ctx, &CreatePaymentInput{
		Child: child.ID, Amount: 1000, PaymentMethod: "Espèce", Type: "Journalier",
	}, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(f.ctx, &CreatePaymentInput{
		Child: child.ID, Amount: 0, PaymentMethod: "Espèce", Period: strPtr("2024-05"),
	}, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(f.ctx, &CreatePaymentInput{
		Child: child.ID, Amount: 1000, PaymentMethod: "Chèque", Period: strPtr("2024-05"),
	}, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceiptNumbersAreDistinct(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Tous-Petits", "Journalier")
	svc := f.payments()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p, err := svc.Create(f.ctx, &CreatePaymentInput{Child: child.ID, Amount: 500, PaymentMethod: "Espèce"}, f.admin.ID)
		require.NoError(t, err)
		assert.False(t, seen[p.ReceiptNumber], p.ReceiptNumber)
		seen[p.ReceiptNumber] = true
	}
}

func TestReceiptNumberCollisionRetries(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Tous-Petits", "Journalier")
	svc := f.payments()

	calls := 0
	svc.newReceiptNumber = func(time.Time) string {
		calls++
		if calls <= 2 {
			return "REC-FIXED"
		}
		return "REC-OTHER"
	}

	first, err := svc.Create(f.ctx, &CreatePaymentInput{Child: child.ID, Amount: 500, PaymentMethod: "Espèce"}, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "REC-FIXED", first.ReceiptNumber)

	second, err := svc.Create(f.ctx, &CreatePaymentInput{Child: child.ID, Amount: 500, PaymentMethod: "Espèce"}, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "REC-OTHER", second.ReceiptNumber)
	assert.Equal(t, 3, calls)

	svc.newReceiptNumber = func(time.Time) string { return "REC-FIXED" }
	_, err = svc.Create(f.ctx, &CreatePaymentInput{Child: child.ID, Amount: 500, PaymentMethod: "Espèce"}, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrReceiptNumberConflict)
}

func TestPaymentListAndStatus(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Maternelle", "Mensuel")
	f.payment(t, child.ID, 1000, "Espèce", testNow.AddDate(0, 0, -3))
	f.payment(t, child.ID, 2000, "Virement", testNow.AddDate(0, 0, -1))
	f.payment(t, child.ID, 3000, "Virement", testNow)
	svc := f.payments()

	out, err := svc.List(f.ctx, &ListPaymentsInput{
		StartDate: "2024-05-13",
		EndDate:   "2024-05-14",
		Page:      pagination.New(1, 10),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.Total)
	assert.Equal(t, 1, out.TotalPages)

	_, err = svc.List(f.ctx, &ListPaymentsInput{StartDate: "14/05/2024", Page: pagination.New(1, 10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := svc.UpdateStatus(f.ctx, out.Payments[0].ID, &UpdateStatusInput{Status: "En retard"})
	require.NoError(t, err)
	assert.Equal(t, "En retard", p.Status)

	_, err = svc.UpdateStatus(f.ctx, 999, &UpdateStatusInput{Status: "Payé"})
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)

	_, err = svc.UpdateStatus(f.ctx, p.ID, &UpdateStatusInput{Status: "Annulé"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDailyReport(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Maternelle", "Mensuel")
	f.payment(t, child.ID, 1000, "Espèce", testNow.Add(-2*time.Hour))
	f.payment(t, child.ID, 2500, "Virement", testNow)
	f.payment(t, child.ID, 9999, "Espèce", testNow.AddDate(0, 0, -1))
	svc := f.payments()

	report, err := svc.DailyReport(f.ctx, "")
	require.NoError(t, err)
	assert.Len(t, report.Payments, 2)
	assert.Equal(t, "2024-05-14", report.Summary.Date)
	assert.Equal(t, 2, report.Summary.TotalPayments)
	assert.EqualValues(t, 3500, report.Summary.TotalAmount)
	assert.Equal(t, map[string]int64{"Espèce": 1000, "Virement": 2500}, report.Summary.PaymentsByMethod)
	assert.Equal(t, map[string]int64{"Mensuel": 3500}, report.Summary.PaymentsByType)

	empty, err := svc.DailyReport(f.ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, empty.Payments)
	assert.NotNil(t, empty.Payments)
	assert.Zero(t, empty.Summary.TotalAmount)
	assert.Empty(t, empty.Summary.PaymentsByMethod)
}

func TestDueDate(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name    string
		payment models.Payment
		want    time.Time
		ok      bool
	}{
		{
			name:    "monthly",
			payment: models.Payment{Type: "Mensuel", Period: strPtr("2024-05")},
			want:    time.Date(2024, 6, 1, 0, 0, 0, 0, loc),
			ok:      true,
		},
		{
			name:    "quarterly",
			payment: models.Payment{Type: "Trimestriel", Period: strPtr("2024-Q4")},
			want:    time.Date(2025, 1, 1, 0, 0, 0, 0, loc),
			ok:      true,
		},
		{
			name:    "daily",
			payment: models.Payment{Type: "Journalier", PaymentDate: time.Date(2024, 5, 14, 16, 0, 0, 0, loc)},
			want:    time.Date(2024, 5, 15, 0, 0, 0, 0, loc),
			ok:      true,
		},
		{name: "monthly without period", payment: models.Payment{Type: "Mensuel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dueDate(&tt.payment, loc)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), got)
			}
		})
	}
}

func TestSweepOverdue(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Maternelle", "Mensuel")
	ctx := f.ctx

	overdue := &models.Payment{ChildID: child.ID, Amount: 1, Type: "Mensuel", Period: strPtr("2024-03"),
		PaymentDate: testNow, ReceiptNumber: "A", Status: "En attente"}
	inGrace := &models.Payment{ChildID: child.ID, Amount: 1, Type: "Journalier",
		PaymentDate: testNow.AddDate(0, 0, -2), ReceiptNumber: "B", Status: "En attente"}
	notDue := &models.Payment{ChildID: child.ID, Amount: 1, Type: "Mensuel", Period: strPtr("2024-05"),
		PaymentDate: testNow, ReceiptNumber: "D", Status: "En attente"}
	paid := &models.Payment{ChildID: child.ID, Amount: 1, Type: "Mensuel", Period: strPtr("2024-01"),
		PaymentDate: testNow, ReceiptNumber: "C", Status: "Payé"}
	for _, p := range []*models.Payment{overdue, inGrace, notDue, paid} {
		require.NoError(t, f.repos.Payments.Create(ctx, p))
	}

	n, err := f.payments().SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.repos.Payments.GetByID(ctx, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, "En retard", got.Status)

	got, err = f.repos.Payments.GetByID(ctx, inGrace.ID)
	require.NoError(t, err)
	assert.Equal(t, "En attente", got.Status)

	f.cfg.Billing.LateSweepEnabled = false
	n, err = f.payments().SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

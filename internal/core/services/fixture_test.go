package services

import (
	"context"
	"testing"
	"time"

	"garderie-api/internal/adapters/persistence/memory"
	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/config"
	"garderie-api/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func init() {
	password.UseMinCost()
}

// testNow is a Tuesday
var testNow = time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC)

type fixture struct {
	ctx   context.Context
	repos *repositories.Set
	clock Clock
	cfg   *config.Config
	admin *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ctx:   context.Background(),
		repos: memory.NewSet(),
		clock: FixedClock(testNow),
		cfg: &config.Config{
			DaycareName: "Garderie Les Petits Anges",
			Location:    time.UTC,
			JWT: config.JWTConfig{
				Secret:           "access-secret",
				RefreshSecret:    "refresh-secret",
				AccessTokenMins:  60,
				RefreshTokenDays: 7,
			},
			Receipt: config.ReceiptConfig{
				Engine:        "native",
				Timeout:       5 * time.Second,
				CurrencyLabel: "FCFA",
			},
			Billing: config.BillingConfig{LateSweepEnabled: true, LateGraceDays: 5},
		},
	}

	hashed, err := password.Hash("secret123")
	require.NoError(t, err)
	f.admin = &models.User{
		Name:     "Directrice",
		Email:    "admin@garderie.com",
		Password: hashed,
		Role:     "admin",
		IsActive: true,
	}
	require.NoError(t, f.repos.Users.Create(f.ctx, f.admin))
	return f
}

func (f *fixture) child(t *testing.T, class, mode string) *models.Child {
	t.Helper()

	c := &models.Child{
		FirstName:      "Yao",
		LastName:       "Konan",
		DateOfBirth:    datatypes.Date(time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC)),
		Class:          class,
		PaymentMode:    mode,
		Parent:         models.Guardian{Name: "Aya Konan", Phone: "0700000000"},
		IsActive:       true,
		EnrollmentDate: testNow,
	}
	require.NoError(t, f.repos.Children.Create(f.ctx, c))
	return c
}

func (f *fixture) payment(t *testing.T, childID uint, amount int64, method string, at time.Time) {
	t.Helper()

	require.NoError(t, f.repos.Payments.Create(f.ctx, &models.Payment{
		ChildID:       childID,
		Amount:        amount,
		PaymentMethod: method,
		Type:          "Mensuel",
		PaymentDate:   at,
		ReceiptNumber: ReceiptNumber(at) + method,
		Status:        "Payé",
		RecordedByID:  f.admin.ID,
	}))
}

func (f *fixture) payments() *PaymentService {
	return NewPaymentService(f.repos.Payments, f.repos.Children, f.cfg.Billing, f.clock)
}

func strPtr(s string) *string {
	return &s
}

package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"garderie-api/internal/adapters/http/middleware"
	"garderie-api/internal/adapters/persistence/memory"
	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/config"
	"garderie-api/internal/core/services"
	"garderie-api/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	password.UseMinCost()
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWithDB(t, nil)
}

func newTestAppWithDB(t *testing.T, checkDB func(context.Context) error) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		AppMode:        "dev",
		DaycareName:    "Garderie Les Petits Anges",
		Location:       time.UTC,
		RequestTimeout: 10 * time.Second,
		Database:       config.DatabaseConfig{Driver: "memory"},
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
	}

	repos := memory.NewSet()
	ctx := context.Background()
	for _, u := range []struct{ name, email, role string }{
		{"Directrice", "admin@garderie.com", "admin"},
		{"Tata Awa", "awa@garderie.com", "tata"},
	} {
		hashed, err := password.Hash("secret123")
		require.NoError(t, err)
		require.NoError(t, repos.Users.Create(ctx, &models.User{
			Name:     u.name,
			Email:    u.email,
			Password: hashed,
			Role:     u.role,
			IsActive: true,
		}))
	}

	svc, err := services.New(repos, cfg, services.NewClock(time.UTC))
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(app, svc, cfg, checkDB)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := do(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var auth services.AuthResponse
	decode(t, resp, &auth)
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func TestPaymentReceiptFlow(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin@garderie.com")

	resp := do(t, app, http.MethodPost, "/api/v1/children", token, fiber.Map{
		"firstName":   "Yao",
		"lastName":    "Konan",
		"dateOfBirth": "2021-03-02",
		"class":       "Maternelle",
		"paymentMode": "Mensuel",
		"parent":      fiber.Map{"name": "Aya Konan", "phone": "0700000000"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var child models.Child
	decode(t, resp, &child)
	require.NotZero(t, child.ID)

	resp = do(t, app, http.MethodPost, "/api/v1/payments", token, fiber.Map{
		"child":         child.ID,
		"amount":        300000,
		"paymentMethod": "Virement",
		"period":        "2024-05",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var payment models.Payment
	decode(t, resp, &payment)
	assert.True(t, strings.HasPrefix(payment.ReceiptNumber, "REC-"))
	assert.Equal(t, "Mensuel", payment.Type)

	resp = do(t, app, http.MethodGet, "/api/v1/payments/"+strconv.FormatUint(uint64(payment.ID), 10)+"/receipt", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "recu-"+payment.ReceiptNumber+".pdf")

	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestPaymentRejectsMissingPeriod(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin@garderie.com")

	resp := do(t, app, http.MethodPost, "/api/v1/children", token, fiber.Map{
		"firstName":   "Ama",
		"lastName":    "Kouassi",
		"dateOfBirth": "2022-01-15",
		"class":       "Crèche",
		"paymentMode": "Trimestriel",
		"parent":      fiber.Map{"name": "Koffi Kouassi", "phone": "0500000000"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var child models.Child
	decode(t, resp, &child)

	resp = do(t, app, http.MethodPost, "/api/v1/payments", token, fiber.Map{
		"child":         child.ID,
		"amount":        90000,
		"paymentMethod": "Espèce",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAccessControl(t *testing.T) {
	app := newTestApp(t)
	tata := login(t, app, "awa@garderie.com")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"anonymous children", http.MethodGet, "/api/v1/children", "", fiber.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/v1/children", "not-a-jwt", fiber.StatusUnauthorized},
		{"tata children", http.MethodGet, "/api/v1/children", tata, fiber.StatusOK},
		{"tata menus", http.MethodGet, "/api/v1/menus", tata, fiber.StatusOK},
		{"tata dashboard", http.MethodGet, "/api/v1/dashboard/stats", tata, fiber.StatusForbidden},
		{"tata financial report", http.MethodGet, "/api/v1/dashboard/financial-report", tata, fiber.StatusForbidden},
		{"tata users", http.MethodGet, "/api/v1/users", tata, fiber.StatusForbidden},
		{"tata payment status", http.MethodPatch, "/api/v1/payments/1/status", tata, fiber.StatusForbidden},
		{"tata delete child", http.MethodDelete, "/api/v1/children/1", tata, fiber.StatusForbidden},
		{"health", http.MethodGet, "/health", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, tt.method, tt.path, tt.token, nil)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestPermissionsEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "awa@garderie.com")

	resp := do(t, app, http.MethodGet, "/api/v1/auth/permissions", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Role        string   `json:"role"`
		Permissions []string `json:"permissions"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "tata", body.Role)
	assert.Contains(t, body.Permissions, "payments:write")
	assert.NotContains(t, body.Permissions, "dashboard:view")
}

func TestDailyReportRouteNotShadowed(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin@garderie.com")

	resp := do(t, app, http.MethodGet, "/api/v1/payments/daily-report?date=2024-05-14", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report services.DailyReport
	decode(t, resp, &report)
	assert.Empty(t, report.Payments)
}

func TestHealthReportsDatabase(t *testing.T) {
	tests := []struct {
		name     string
		checkDB  func(context.Context) error
		status   int
		database string
	}{
		{"no sql database", nil, fiber.StatusOK, "healthy"},
		{"ping ok", func(context.Context) error { return nil }, fiber.StatusOK, "healthy"},
		{"ping fails", func(context.Context) error { return errors.New("connection refused") }, fiber.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestAppWithDB(t, tt.checkDB)

			resp := do(t, app, http.MethodGet, "/health", "", nil)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body struct {
				Checks map[string]string `json:"checks"`
			}
			decode(t, resp, &body)
			assert.Equal(t, tt.database, body.Checks["database"])
		})
	}
}

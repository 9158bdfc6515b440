package services

import (
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/config"
	"garderie-api/internal/pkg/pdf"
)

// Services bundles every service the HTTP layer and the scheduler use
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Children   *ChildService
	Payments   *PaymentService
	Receipts   *ReceiptService
	Menus      *MenuService
	Attendance *AttendanceService
	Dashboard  *DashboardService
	Cron       *CronService
}

// New wires the services on top of repos
func New(repos *repositories.Set, cfg *config.Config, clock Clock) (*Services, error) {
	converter, err := pdf.New(cfg.Receipt.Engine, cfg.Receipt.WkhtmltopdfPath)
	if err != nil {
		return nil, err
	}

	payments := NewPaymentService(repos.Payments, repos.Children, cfg.Billing, clock)
	receipts, err := NewReceiptService(payments, converter, cfg)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:       NewAuthService(repos.Users, repos.RefreshTokens, cfg, clock),
		Users:      NewUserService(repos.Users, repos.RefreshTokens),
		Children:   NewChildService(repos.Children, clock),
		Payments:   payments,
		Receipts:   receipts,
		Menus:      NewMenuService(repos.Menus, clock),
		Attendance: NewAttendanceService(repos.Attendance, repos.Children, clock),
		Dashboard:  NewDashboardService(repos, clock),
		Cron:       NewCronService(repos.RefreshTokens, payments, clock),
	}, nil
}

package services

import (
	"context"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/dates"
)

const (
	trendDays          = 7
	recentPaymentCount = 5
)

// DashboardService aggregates figures for the admin dashboard and reports.
// Every method is a read.
type DashboardService struct {
	repos *repositories.Set
	clock Clock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repos *repositories.Set, clock Clock) *DashboardService {
	return &DashboardService{repos: repos, clock: clock}
}

// ============================================================
// Admin Dashboard
// ============================================================

// DashboardStats represents admin dashboard data
type DashboardStats struct {
	TotalChildren int64 `json:"totalChildren"`
	TotalUsers    int64 `json:"totalUsers"`

	TodayRevenue    int64 `json:"todayRevenue"`
	TodayPayments   int   `json:"todayPayments"`
	MonthlyRevenue  int64 `json:"monthlyRevenue"`
	MonthlyPayments int   `json:"monthlyPayments"`
	OverduePayments int64 `json:"overduePayments"`

	ChildrenByClass []ClassCount      `json:"childrenByClass"`
	RevenueByMethod []MethodTotal     `json:"revenueByMethod"`
	RevenueTrend    []TrendPoint      `json:"revenueTrend"`
	RecentPayments  []*models.Payment `json:"recentPayments"`
}

// Stats returns the dashboard figures as of now
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	today := s.clock.today()
	tomorrow := today.AddDate(0, 0, 1)
	monthStart := dates.StartOfMonth(today)
	trendStart := today.AddDate(0, 0, -(trendDays - 1))

	stats := &DashboardStats{}
	var err error

	if stats.TotalChildren, err = s.repos.Children.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.repos.Users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.OverduePayments, err = s.repos.Payments.CountByStatus(ctx, string(domain.PaymentStatusLate)); err != nil {
		return nil, err
	}

	byClass, err := s.repos.Children.CountActiveByClass(ctx)
	if err != nil {
		return nil, err
	}
	stats.ChildrenByClass = classCounts(byClass)

	// One read covers the month and the trend window
	from := monthStart
	if trendStart.Before(from) {
		from = trendStart
	}
	payments, err := s.repos.Payments.ListBetween(ctx, from, tomorrow)
	if err != nil {
		return nil, err
	}

	var month []*models.Payment
	for _, p := range payments {
		paid := p.PaymentDate.In(s.clock.Location)
		if !paid.Before(monthStart) {
			month = append(month, p)
		}
		if !paid.Before(today) {
			stats.TodayRevenue += p.Amount
			stats.TodayPayments++
		}
	}
	stats.MonthlyRevenue = sumAmounts(month)
	stats.MonthlyPayments = len(month)
	stats.RevenueByMethod = revenueByMethod(month)
	stats.RevenueTrend = revenueTrend(payments, today, trendDays, s.clock.Location)

	if stats.RecentPayments, err = s.repos.Payments.Recent(ctx, recentPaymentCount); err != nil {
		return nil, err
	}
	if stats.RecentPayments == nil {
		stats.RecentPayments = []*models.Payment{}
	}
	return stats, nil
}

// ============================================================
// Financial Report
// ============================================================

// FinancialReportInput selects the report range. Dates are inclusive days.
type FinancialReportInput struct {
	StartDate string
	EndDate   string
	GroupBy   string
}

// FinancialReport buckets payments between two days, oldest bucket first
func (s *DashboardService) FinancialReport(ctx context.Context, input *FinancialReportInput) ([]FinancialBucket, error) {
	groupBy := input.GroupBy
	switch groupBy {
	case "":
		groupBy = GroupByDay
	case GroupByDay, GroupByWeek, GroupByMonth:
	default:
		return nil, domain.Invalid("groupBy must be one of: day, week, month")
	}

	end := s.clock.today()
	start := end.AddDate(0, -1, 0)
	var err error
	if input.StartDate != "" {
		if start, err = dates.ParseDay(input.StartDate, s.clock.Location); err != nil {
			return nil, domain.Invalid("startDate must be a date (YYYY-MM-DD)")
		}
	}
	if input.EndDate != "" {
		if end, err = dates.ParseDay(input.EndDate, s.clock.Location); err != nil {
			return nil, domain.Invalid("endDate must be a date (YYYY-MM-DD)")
		}
	}
	if end.Before(start) {
		return nil, domain.Invalid("endDate must not be before startDate")
	}

	payments, err := s.repos.Payments.ListBetween(ctx, start, dates.EndOfDay(end))
	if err != nil {
		return nil, err
	}
	return groupPayments(payments, groupBy, s.clock.Location), nil
}

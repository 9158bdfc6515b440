package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/adapters/persistence/repositories"
	"garderie-api/internal/config"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/dates"
	"garderie-api/internal/pkg/pagination"
	"garderie-api/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// receiptAttempts bounds regeneration after a receipt number collision
const receiptAttempts = 3

// PaymentService records payments and answers payment queries
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	childRepo   repositories.ChildRepository
	billing     config.BillingConfig
	clock       Clock

	// newReceiptNumber is replaced in tests to force collisions
	newReceiptNumber func(now time.Time) string
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	childRepo repositories.ChildRepository,
	billing config.BillingConfig,
	clock Clock,
) *PaymentService {
	return &PaymentService{
		paymentRepo:      paymentRepo,
		childRepo:        childRepo,
		billing:          billing,
		clock:            clock,
		newReceiptNumber: ReceiptNumber,
	}
}

// CreatePaymentInput represents a payment to record
type CreatePaymentInput struct {
	Child         uint    `json:"child" validate:"required"`
	Amount        int64   `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,paymentmethod"`
	Type          string  `json:"type" validate:"omitempty,paymentmode"`
	Period        *string `json:"period"`
	PaymentDate   string  `json:"paymentDate"`
	Status        string  `json:"status" validate:"omitempty,paymentstatus"`
	Notes         string  `json:"notes" validate:"max=1000"`
}

// ListPaymentsInput represents payment list filters. Dates are inclusive days.
type ListPaymentsInput struct {
	StartDate string
	EndDate   string
	Type      string
	Status    string
	ChildID   uint
	Page      pagination.Params
}

// ListPaymentsOutput is the paginated payment listing
type ListPaymentsOutput struct {
	Payments []*models.Payment `json:"payments"`
	pagination.Meta
}

// UpdateStatusInput represents a status change
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,paymentstatus"`
}

// DailySummary aggregates one day of payments
type DailySummary struct {
	Date             string           `json:"date"`
	TotalPayments    int              `json:"totalPayments"`
	TotalAmount      int64            `json:"totalAmount"`
	PaymentsByMethod map[string]int64 `json:"paymentsByMethod"`
	PaymentsByType   map[string]int64 `json:"paymentsByType"`
}

// DailyReport lists one day of payments with their summary
type DailyReport struct {
	Payments []*models.Payment `json:"payments"`
	Summary  DailySummary      `json:"summary"`
}

// ReceiptNumber builds "REC-<yyyymmdd>-<unix millis>-<6 hex>"
func ReceiptNumber(now time.Time) string {
	entropy := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("REC-%s-%d-%s", now.Format("20060102"), now.UnixMilli(), entropy)
}

// Create records a payment for a child and returns it with child and
// recording user expanded
func (s *PaymentService) Create(ctx context.Context, input *CreatePaymentInput, recordedBy uint) (*models.Payment, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	child, err := s.childRepo.GetByID(ctx, input.Child)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChildNotFound
		}
		return nil, err
	}

	mode := domain.PaymentMode(child.PaymentMode)
	if input.Type != "" && domain.PaymentMode(input.Type) != mode {
		return nil, domain.Invalid("Le type de paiement (%s) ne correspond pas au mode de l'enfant (%s)", input.Type, mode)
	}

	period, err := s.resolvePeriod(mode, input.Period)
	if err != nil {
		return nil, err
	}

	paidAt, err := s.parsePaymentDate(input.PaymentDate)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = string(domain.PaymentStatusPaid)
	}

	payment := &models.Payment{
		ChildID:       child.ID,
		Amount:        input.Amount,
		PaymentDate:   paidAt,
		PaymentMethod: input.PaymentMethod,
		Type:          string(mode),
		Period:        period,
		Status:        status,
		RecordedByID:  recordedBy,
		Notes:         strings.TrimSpace(input.Notes),
	}
	if err := s.insert(ctx, payment); err != nil {
		return nil, err
	}

	log.Printf("💰 Payment recorded: %s %d (%s) for child %d", payment.ReceiptNumber, payment.Amount, payment.Type, child.ID)
	return s.Get(ctx, payment.ID)
}

// insert stores payment, drawing a new receipt number on collision
func (s *PaymentService) insert(ctx context.Context, payment *models.Payment) error {
	for attempt := 0; attempt < receiptAttempts; attempt++ {
		payment.ID = 0
		payment.ReceiptNumber = s.newReceiptNumber(s.clock.now())
		err := s.paymentRepo.Create(ctx, payment)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateEntry) {
			return err
		}
		log.Printf("⚠️ Receipt number collision on %s, retrying", payment.ReceiptNumber)
	}
	return domain.ErrReceiptNumberConflict
}

// resolvePeriod enforces that non-daily payments carry a valid period and
// daily payments carry none
func (s *PaymentService) resolvePeriod(mode domain.PaymentMode, period *string) (*string, error) {
	if !mode.RequiresPeriod() {
		return nil, nil
	}
	if period == nil || strings.TrimSpace(*period) == "" {
		return nil, domain.Invalid("La période est requise pour un paiement %s", mode)
	}

	label := strings.ToUpper(strings.TrimSpace(*period))
	if _, err := domain.ParsePeriod(label, s.clock.Location); err != nil {
		return nil, domain.Invalid("Période invalide %q (format AAAA-MM ou AAAA-Qn, ex. 2024-05, 2024-Q2)", *period)
	}
	isQuarter := strings.Contains(label, "-Q")
	if isQuarter != (mode == domain.PaymentModeQuarterly) {
		return nil, domain.Invalid("La période %q ne correspond pas au type %s", label, mode)
	}
	return &label, nil
}

func (s *PaymentService) parsePaymentDate(value string) (time.Time, error) {
	if value == "" {
		return s.clock.now(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(s.clock.Location), nil
	}
	day, err := dates.ParseDay(value, s.clock.Location)
	if err != nil {
		return time.Time{}, domain.Invalid("paymentDate must be a date (YYYY-MM-DD)")
	}
	if day.Equal(s.clock.today()) {
		return s.clock.now(), nil
	}
	return day, nil
}

// List lists payments newest first
func (s *PaymentService) List(ctx context.Context, input *ListPaymentsInput) (*ListPaymentsOutput, error) {
	filter := repositories.PaymentFilter{
		Type:    input.Type,
		Status:  input.Status,
		ChildID: input.ChildID,
	}
	if input.StartDate != "" {
		from, err := dates.ParseDay(input.StartDate, s.clock.Location)
		if err != nil {
			return nil, domain.Invalid("startDate must be a date (YYYY-MM-DD)")
		}
		filter.From = &from
	}
	if input.EndDate != "" {
		end, err := dates.ParseDay(input.EndDate, s.clock.Location)
		if err != nil {
			return nil, domain.Invalid("endDate must be a date (YYYY-MM-DD)")
		}
		to := dates.EndOfDay(end)
		filter.To = &to
	}

	payments, total, err := s.paymentRepo.List(ctx, filter, input.Page.Offset, input.Page.Limit)
	if err != nil {
		return nil, err
	}
	return &ListPaymentsOutput{Payments: payments, Meta: pagination.GetMeta(input.Page, total)}, nil
}

// Get gets one payment with child and recording user
func (s *PaymentService) Get(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// UpdateStatus changes the settlement status, the only mutable field of a payment
func (s *PaymentService) UpdateStatus(ctx context.Context, id uint, input *UpdateStatusInput) (*models.Payment, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.UpdateStatus(ctx, id, input.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// DailyReport lists the payments of one calendar day (today when date is empty)
func (s *PaymentService) DailyReport(ctx context.Context, date string) (*DailyReport, error) {
	day := s.clock.today()
	if date != "" {
		var err error
		if day, err = dates.ParseDay(date, s.clock.Location); err != nil {
			return nil, domain.Invalid("date must be a date (YYYY-MM-DD)")
		}
	}

	payments, err := s.paymentRepo.ListBetween(ctx, day, dates.EndOfDay(day))
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	return &DailyReport{
		Payments: payments,
		Summary:  summarizeDay(day, payments),
	}, nil
}

// SweepOverdue marks pending payments past their due date as late.
// It does nothing unless the late sweep is enabled.
func (s *PaymentService) SweepOverdue(ctx context.Context) (int, error) {
	if !s.billing.LateSweepEnabled {
		return 0, nil
	}

	pending, err := s.paymentRepo.ListByStatus(ctx, string(domain.PaymentStatusPending))
	if err != nil {
		return 0, err
	}

	now := s.clock.now()
	marked := 0
	for _, p := range pending {
		due, ok := dueDate(p, s.clock.Location)
		if !ok {
			continue
		}
		if now.Before(due.AddDate(0, 0, s.billing.LateGraceDays)) {
			continue
		}
		if err := s.paymentRepo.UpdateStatus(ctx, p.ID, string(domain.PaymentStatusLate)); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}

// dueDate is the end of the period a payment covers: one month after a
// monthly period starts, three months after a quarterly one, the day after
// a daily payment
func dueDate(p *models.Payment, loc *time.Location) (time.Time, bool) {
	switch domain.PaymentMode(p.Type) {
	case domain.PaymentModeDaily:
		return dates.StartOfDay(p.PaymentDate.In(loc)).AddDate(0, 0, 1), true
	case domain.PaymentModeMonthly, domain.PaymentModeQuarterly:
		if p.Period == nil {
			return time.Time{}, false
		}
		start, err := domain.ParsePeriod(*p.Period, loc)
		if err != nil {
			return time.Time{}, false
		}
		if p.Type == string(domain.PaymentModeMonthly) {
			return start.AddDate(0, 1, 0), true
		}
		return start.AddDate(0, 3, 0), true
	}
	return time.Time{}, false
}

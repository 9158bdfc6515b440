package handlers

import (
	"strconv"

	"garderie-api/internal/core/domain"
	"garderie-api/internal/core/services"
	"garderie-api/internal/pkg/pagination"
	"garderie-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment and receipt endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
	receiptService *services.ReceiptService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService, receiptService *services.ReceiptService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		receiptService: receiptService,
	}
}

// ListPayments lists payments newest first
// @Summary List payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "First day (YYYY-MM-DD)"
// @Param endDate query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param type query string false "Journalier, Mensuel or Trimestriel"
// @Param status query string false "Payé, En attente or En retard"
// @Param child query int false "Child ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} services.ListPaymentsOutput
// @Failure 400 {object} response.Message
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	input := &services.ListPaymentsInput{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		Page:      pagination.GetParams(c),
	}
	if raw := c.Query("child"); raw != "" {
		childID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return handleError(c, domain.Invalid("child must be an identifier"))
		}
		input.ChildID = uint(childID)
	}

	result, err := h.paymentService.List(c.UserContext(), input)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, result)
}

// CreatePayment records a payment
// @Summary Record payment
// @Description Records a payment; the receipt number is generated by the server
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePaymentInput true "Payment"
// @Success 201 {object} models.Payment
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return handleError(c, err)
	}

	var input services.CreatePaymentInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	payment, err := h.paymentService.Create(c.UserContext(), &input, userID)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, payment)
}

// DailyReport lists one day of payments with totals
// @Summary Daily payment report
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD), today by default"
// @Success 200 {object} services.DailyReport
// @Failure 400 {object} response.Message
// @Router /payments/daily-report [get]
func (h *PaymentHandler) DailyReport(c *fiber.Ctx) error {
	report, err := h.paymentService.DailyReport(c.UserContext(), c.Query("date"))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, report)
}

// GetPayment gets one payment
// @Summary Get payment by ID
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} models.Payment
// @Failure 404 {object} response.Message
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	payment, err := h.paymentService.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, payment)
}

// UpdateStatus changes the settlement status of a payment (Admin only)
// @Summary Update payment status
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param body body services.UpdateStatusInput true "Status"
// @Success 200 {object} models.Payment
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /payments/{id}/status [patch]
func (h *PaymentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	var input services.UpdateStatusInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	payment, err := h.paymentService.UpdateStatus(c.UserContext(), id, &input)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, payment)
}

// Receipt downloads the PDF receipt of a payment
// @Summary Download receipt
// @Tags Payments
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /payments/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	receipt, err := h.receiptService.Render(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Attachment(c, "application/pdf", receipt.Filename, receipt.PDF)
}

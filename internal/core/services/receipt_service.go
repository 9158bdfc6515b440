package services

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/config"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/pdf"

	"github.com/gofiber/template/html/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

const receiptTemplate = "receipt"

// ReceiptService renders payment receipts as PDF documents. Nothing is
// cached or written to disk.
type ReceiptService struct {
	payments  *PaymentService
	engine    *html.Engine
	converter pdf.Converter
	cfg       config.ReceiptConfig
	daycare   string
	loc       *time.Location
	printer   *message.Printer
}

// NewReceiptService loads the embedded receipt template
func NewReceiptService(payments *PaymentService, converter pdf.Converter, cfg *config.Config) (*ReceiptService, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load receipt template: %w", err)
	}

	return &ReceiptService{
		payments:  payments,
		engine:    engine,
		converter: converter,
		cfg:       cfg.Receipt,
		daycare:   cfg.DaycareName,
		loc:       cfg.Location,
		printer:   message.NewPrinter(language.French),
	}, nil
}

// ReceiptView is the data bound into the receipt template
type ReceiptView struct {
	DaycareName   string
	ReceiptNumber string
	PaymentDate   string
	ChildName     string
	ChildClass    string
	GuardianName  string
	Period        string
	Status        string
	Description   string
	Type          string
	Method        string
	Amount        string
	RecordedBy    string
}

// Receipt is a rendered PDF and its download name
type Receipt struct {
	Filename string
	PDF      []byte
}

// Render builds the PDF receipt of payment id
func (s *ReceiptService) Render(ctx context.Context, id uint) (*Receipt, error) {
	payment, err := s.payments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var page bytes.Buffer
	if err := s.engine.Render(&page, receiptTemplate, s.view(payment)); err != nil {
		log.Printf("❌ Receipt template failed for %s: %v", payment.ReceiptNumber, err)
		return nil, domain.ErrReceiptFailed
	}

	convertCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	doc, err := s.converter.Convert(convertCtx, page.Bytes())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("⏱️ Receipt conversion timed out for %s", payment.ReceiptNumber)
			return nil, domain.ErrReceiptTimeout
		}
		log.Printf("❌ Receipt conversion failed for %s: %v", payment.ReceiptNumber, err)
		return nil, domain.ErrReceiptFailed
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		log.Printf("❌ Receipt conversion for %s produced no PDF", payment.ReceiptNumber)
		return nil, domain.ErrReceiptFailed
	}

	return &Receipt{
		Filename: "recu-" + payment.ReceiptNumber + ".pdf",
		PDF:      doc,
	}, nil
}

func (s *ReceiptService) view(p *models.Payment) ReceiptView {
	v := ReceiptView{
		DaycareName:   s.daycare,
		ReceiptNumber: p.ReceiptNumber,
		PaymentDate:   p.PaymentDate.In(s.loc).Format("02/01/2006"),
		Status:        p.Status,
		Description:   "Frais de garderie - " + p.Type,
		Type:          p.Type,
		Method:        p.PaymentMethod,
		Amount:        s.FormatAmount(p.Amount),
	}
	if p.Period != nil {
		v.Period = *p.Period
	}
	if p.Child != nil {
		v.ChildName = p.Child.FullName()
		v.ChildClass = p.Child.Class
		v.GuardianName = p.Child.Parent.Name
	}
	if p.RecordedBy != nil {
		v.RecordedBy = p.RecordedBy.Name
	}
	return v
}

// FormatAmount groups thousands the French way and appends the currency label
func (s *ReceiptService) FormatAmount(amount int64) string {
	grouped := s.printer.Sprintf("%d", amount)
	grouped = strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(grouped)
	return grouped + " " + s.cfg.CurrencyLabel
}

package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/pdf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConverter struct {
	html []byte
	out  []byte
	err  error
}

func (c *stubConverter) Convert(ctx context.Context, doc []byte) ([]byte, error) {
	c.html = doc
	return c.out, c.err
}

func TestReceiptRender(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Maternelle", "Mensuel")
	payments := f.payments()
	p, err := payments.Create(f.ctx, &CreatePaymentInput{
		Child: child.ID, Amount: 300000, PaymentMethod: "Virement", Period: strPtr("2024-05"),
	}, f.admin.ID)
	require.NoError(t, err)

	stub := &stubConverter{out: []byte("%PDF-1.4 stub")}
	svc, err := NewReceiptService(payments, stub, f.cfg)
	require.NoError(t, err)

	receipt, err := svc.Render(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "recu-"+p.ReceiptNumber+".pdf", receipt.Filename)

	page := string(stub.html)
	assert.Contains(t, page, p.ReceiptNumber)
	assert.Contains(t, page, "14/05/2024")
	assert.Contains(t, page, "Yao Konan")
	assert.Contains(t, page, "Aya Konan")
	assert.Contains(t, page, "Frais de garderie - Mensuel")
	assert.Contains(t, page, "300 000 FCFA")
	assert.Contains(t, page, "Directrice")
}

func TestReceiptRenderNative(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Maternelle", "Mensuel")
	payments := f.payments()
	p, err := payments.Create(f.ctx, &CreatePaymentInput{
		Child: child.ID, Amount: 300000, PaymentMethod: "Virement", Period: strPtr("2024-05"),
	}, f.admin.ID)
	require.NoError(t, err)

	svc, err := NewReceiptService(payments, pdf.NewNativeConverter(), f.cfg)
	require.NoError(t, err)

	receipt, err := svc.Render(f.ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(receipt.PDF, []byte("%PDF")))
}

func TestReceiptRenderFailures(t *testing.T) {
	f := newFixture(t)
	child := f.child(t, "Tous-Petits", "Journalier")
	payments := f.payments()
	p, err := payments.Create(f.ctx, &CreatePaymentInput{Child: child.ID, Amount: 2000, PaymentMethod: "Espèce"}, f.admin.ID)
	require.NoError(t, err)

	tests := []struct {
		name string
		conv *stubConverter
		want error
	}{
		{name: "timeout", conv: &stubConverter{err: context.DeadlineExceeded}, want: domain.ErrReceiptTimeout},
		{name: "engine error", conv: &stubConverter{err: errors.New("exit status 1")}, want: domain.ErrReceiptFailed},
		{name: "not a pdf", conv: &stubConverter{out: []byte("<html>")}, want: domain.ErrReceiptFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewReceiptService(payments, tt.conv, f.cfg)
			require.NoError(t, err)
			_, err = svc.Render(f.ctx, p.ID)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	svc, err := NewReceiptService(payments, &stubConverter{}, f.cfg)
	require.NoError(t, err)
	_, err = svc.Render(f.ctx, 999)
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestFormatAmount(t *testing.T) {
	f := newFixture(t)
	svc, err := NewReceiptService(f.payments(), &stubConverter{}, f.cfg)
	require.NoError(t, err)

	assert.Equal(t, "500 FCFA", svc.FormatAmount(500))
	assert.Equal(t, "300 000 FCFA", svc.FormatAmount(300000))
	assert.Equal(t, "1 250 000 FCFA", svc.FormatAmount(1250000))
}

package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/ordering"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cafe-pos-api/pkg/money"
)

func sampleOrder() *entity.Order {
	return &entity.Order{
		ID:            "o-1",
		OrderNumber:   "ORD-123456",
		Channel:       entity.OrderChannelKiosk,
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
		TotalCents:    34500,
		OrderedAt:     time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Items: []entity.OrderItem{
			{ProductName: "Latte", Quantity: 2, UnitPriceCents: 15000, TotalCents: 30000, SpecialNotes: "oat milk"},
			{ProductName: "Cookie", Quantity: 1, UnitPriceCents: 4500, TotalCents: 4500},
		},
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	g := pdf.NewReceiptGenerator(money.NewFormatter("₱", "en"))

	doc, err := g.GenerateReceiptPDF(context.Background(), sampleOrder(), ordering.ReceiptInfo{
		StoreName: "Café Test",
		TrackURL:  "http://localhost:8080/api/orders/ORD-123456",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "el documento debe ser un PDF")

	noQR, err := g.GenerateReceiptPDF(context.Background(), sampleOrder(), ordering.ReceiptInfo{})
	require.NoError(t, err)
	assert.NotEmpty(t, noQR)
}

func TestGenerateReceiptPDF_OrdenNil(t *testing.T) {
	g := pdf.NewReceiptGenerator(nil)
	_, err := g.GenerateReceiptPDF(context.Background(), nil, ordering.ReceiptInfo{})
	assert.Error(t, err)
}

// Package pdf genera el recibo de una orden con Maroto v2.
//
// Layout (rollo de 80 mm):
//
//	┌──────────────────────────────┐
//	│  Tienda                      │
//	│  Orden N° + fecha + canal    │
//	│  ──────────────────────────  │
//	│  Cant | Producto | Total     │
//	│        notas                 │
//	│  ──────────────────────────  │
//	│  TOTAL + pago                │
//	│  QR de seguimiento           │
//	└──────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/cafe-pos-api/internal/application/ordering"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/pkg/money"
)

var _ ordering.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// Dimensiones del rollo en mm. El alto crece con las líneas de la orden.
const (
	receiptWidth      = 80.0
	receiptBaseHeight = 120.0
	receiptLineHeight = 9.0
)

var (
	colorPrimary = &props.Color{Red: 70, Green: 45, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa ordering.ReceiptPDFGenerator.
type ReceiptGenerator struct {
	formatter *money.Formatter
}

// NewReceiptGenerator construye el generador con el formato de moneda de la tienda.
func NewReceiptGenerator(formatter *money.Formatter) *ReceiptGenerator {
	return &ReceiptGenerator{formatter: formatter}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(_ context.Context, order *entity.Order, info ordering.ReceiptInfo) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: orden nil")
	}
	height := receiptBaseHeight + receiptLineHeight*float64(len(order.Items))
	cfg := config.NewBuilder().
		WithDimensions(receiptWidth, height).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Receipt "+order.OrderNumber, true).
		WithAuthor(nonEmpty(info.StoreName, "Café POS"), true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRows(order, info)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(itemRows(order, g.formatter)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRows(order, g.formatter)...)
	if info.TrackURL != "" {
		m.AddRows(qrRows(info.TrackURL)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRows(order *entity.Order, info ordering.ReceiptInfo) []core.Row {
	return []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(nonEmpty(info.StoreName, "Café POS"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New("Order #"+order.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s · %s", order.OrderedAt.Format("2006-01-02 15:04"), strings.ToUpper(order.Channel)), props.Text{
				Size: 7, Align: align.Center, Color: colorGray,
			}),
		)),
	}
}

func itemRows(order *entity.Order, f *money.Formatter) []core.Row {
	rows := make([]core.Row, 0, len(order.Items)*2)
	for _, it := range order.Items {
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%dx", it.Quantity), props.Text{Size: 8})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 8})),
			col.New(4).Add(text.New(f.Cents(it.TotalCents), props.Text{Size: 8, Align: align.Right})),
		))
		if it.SpecialNotes != "" {
			rows = append(rows, row.New(4).Add(
				col.New(2),
				col.New(10).Add(text.New(it.SpecialNotes, props.Text{Size: 6.5, Style: fontstyle.Italic, Color: colorGray})),
			))
		}
	}
	return rows
}

func totalRows(order *entity.Order, f *money.Formatter) []core.Row {
	return []core.Row{
		row.New(7).Add(
			col.New(6).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary})),
			col.New(6).Add(text.New(f.Cents(order.TotalCents), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary,
			})),
		),
		row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Payment: %s (%s)", strings.ToUpper(order.PaymentMethod), order.PaymentStatus), props.Text{
				Size: 7, Color: colorGray,
			}),
		)),
	}
}

func qrRows(trackURL string) []core.Row {
	return []core.Row{
		row.New(3),
		row.New(35).Add(
			col.New(3),
			col.New(6).Add(code.NewQr(trackURL, props.Rect{Percent: 100, Center: true})),
			col.New(3),
		),
		row.New(5).Add(col.New(12).Add(
			text.New("Scan to track your order", props.Text{Size: 7, Align: align.Center, Color: colorGray}),
		)),
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

package ordering

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// ReceiptInfo datos de cabecera del recibo.
type ReceiptInfo struct {
	StoreName string
	TrackURL  string // contenido del QR; vacío = sin QR
}

// ReceiptPDFGenerator genera el PDF del recibo de una orden.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order, info ReceiptInfo) ([]byte, error)
}

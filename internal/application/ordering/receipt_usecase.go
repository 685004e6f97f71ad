package ordering

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una orden.
type ReceiptUseCase struct {
	orderRepo repository.OrderRepository
	generator ReceiptPDFGenerator
	info      ReceiptInfo
	trackBase string
}

// NewReceiptUseCase construye el caso de uso. trackBase es la URL pública de seguimiento
// (se le agrega el número de orden para el QR); vacío = recibo sin QR.
func NewReceiptUseCase(orderRepo repository.OrderRepository, generator ReceiptPDFGenerator, info ReceiptInfo, trackBase string) *ReceiptUseCase {
	return &ReceiptUseCase{orderRepo: orderRepo, generator: generator, info: info, trackBase: trackBase}
}

// DownloadReceiptPDF devuelve el PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, orderNumber string) ([]byte, string, error) {
	order, err := uc.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	info := uc.info
	if uc.trackBase != "" {
		info.TrackURL = uc.trackBase + order.OrderNumber
	}
	pdf, err := uc.generator.GenerateReceiptPDF(ctx, order, info)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generar pdf: %w", err)
	}
	return pdf, "receipt-" + order.OrderNumber + ".pdf", nil
}

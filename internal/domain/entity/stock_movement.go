package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de ajuste manual aceptados. Las ventas generan un motivo descriptivo propio.
const (
	ReasonManualAdjustment = "manual_adjustment"
	ReasonPurchase         = "purchase"
	ReasonSpoilage         = "spoilage"
	ReasonTheft            = "theft"
	ReasonCorrection       = "correction"
)

// IsAdjustmentReason indica si reason es un motivo válido para un ajuste manual.
func IsAdjustmentReason(reason string) bool {
	switch reason {
	case ReasonManualAdjustment, ReasonPurchase, ReasonSpoilage, ReasonTheft, ReasonCorrection:
		return true
	}
	return false
}

// StockMovement es una entrada inmutable del libro de inventario.
// Change negativo = consumo, positivo = reposición.
type StockMovement struct {
	ID              string
	InventoryItemID string
	Change          decimal.Decimal
	Reason          string
	ReferenceID     string // vacío si no aplica (ej. ID de la orden)
	CreatedAt       time.Time
}

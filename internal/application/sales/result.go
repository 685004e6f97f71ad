package sales

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/inventory"
)

// ErrRejected se retorna dentro del callback de la transacción para forzar Rollback
// cuando la validación rechaza la venta. Nunca sale de este paquete ni de sus callers directos.
var ErrRejected = errors.New("venta rechazada")

// Status estado final de una venta.
type Status string

const (
	StatusCommitted Status = "committed"
	StatusRejected  Status = "rejected"
)

// RejectCode motivo de rechazo.
type RejectCode string

const (
	RejectNotFound          RejectCode = "not_found"
	RejectInsufficientStock RejectCode = "insufficient_stock"
	RejectInvalidQuantity   RejectCode = "invalid_quantity"
)

// Line una línea de venta: producto y cantidad entera positiva.
type Line struct {
	ProductID string
	Quantity  int
}

// SaleContext describe el origen de la venta.
type SaleContext struct {
	Channel     string // kiosk | cashier | admin
	ReferenceID string // ID de la orden; vacío en venta directa (se usa el ID del producto)
	OrderNumber string // si está presente el motivo del movimiento es "Order #..."
	Actor       activity.Actor
}

// ResolvedLine línea con el producto cargado y la disponibilidad calculada sobre existencias bloqueadas.
type ResolvedLine struct {
	Product      *entity.Product
	Quantity     int
	Availability inventory.Availability
}

// Deduction descuento aplicado a un insumo.
type Deduction struct {
	InventoryItemID string
	Ingredient      string
	Unit            string
	Quantity        decimal.Decimal // positiva; el movimiento registra -Quantity
	Remaining       decimal.Decimal
	MovementID      string
	Reason          string
}

// Rejection detalle de una venta rechazada. No hubo escrituras.
type Rejection struct {
	Code      RejectCode
	Message   string
	ProductID string
	Shortages []domain.Shortage // el primero es el faltante principal
}

// Err convierte el rechazo al error de dominio que mapea la capa HTTP.
func (r *Rejection) Err() error {
	switch r.Code {
	case RejectInsufficientStock:
		return &domain.InsufficientStockError{Shortages: r.Shortages}
	case RejectNotFound:
		return fmt.Errorf("%s: %w", r.Message, domain.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", r.Message, domain.ErrInvalidInput)
	}
}

// SaleResult resultado de ProcessSale / ProcessOrder / DeductInTx.
type SaleResult struct {
	Status     Status
	Lines      []ResolvedLine
	Deductions []Deduction
	Rejection  *Rejection
}

// Committed indica si la venta se aplicó.
func (r *SaleResult) Committed() bool { return r != nil && r.Status == StatusCommitted }

func rejected(code RejectCode, productID, msg string) *SaleResult {
	return &SaleResult{
		Status:    StatusRejected,
		Rejection: &Rejection{Code: code, ProductID: productID, Message: msg},
	}
}

// fatal envuelve un error de almacenamiento como ErrTransactionFailed.
func fatal(err error) error {
	if errors.Is(err, domain.ErrTransactionFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
}

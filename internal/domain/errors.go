package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidRecipeLine = errors.New("línea de receta inválida: quantity_needed debe ser > 0")
	// ErrTransactionFailed indica que la transacción de aplicación no pudo confirmarse.
	// Nunca deja deducciones parciales; el caller debe reintentar.
	ErrTransactionFailed = errors.New("la transacción no se completó")
)

// Shortage describe un insumo cuya existencia no alcanza para la venta.
type Shortage struct {
	InventoryItemID string
	Ingredient      string
	Unit            string
	Needed          decimal.Decimal
	Available       decimal.Decimal
}

// InsufficientStockError agrupa los faltantes detectados en la validación.
// El primero es el faltante principal que se reporta al cajero.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	if len(e.Shortages) == 0 {
		return ErrInsufficientStock.Error()
	}
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s: se necesitan %s %s, hay %s %s",
			s.Ingredient, s.Needed.String(), s.Unit, s.Available.String(), s.Unit))
	}
	return ErrInsufficientStock.Error() + " (" + strings.Join(parts, "; ") + ")"
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Primary devuelve el primer faltante.
func (e *InsufficientStockError) Primary() Shortage {
	if len(e.Shortages) == 0 {
		return Shortage{}
	}
	return e.Shortages[0]
}

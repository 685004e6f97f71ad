package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un insumo en bodega (leche, café en grano, vasos...).
// Quantity es la proyección actual del libro de movimientos; solo la modifica el StockLedger.
type InventoryItem struct {
	ID                string
	Name              string // único
	Unit              string // etiqueta libre: "kg", "L", "pcs"
	Quantity          decimal.Decimal
	InitialQuantity   decimal.Decimal  // cantidad al crear el ítem (base del invariante del libro)
	LowStockThreshold *decimal.Decimal // nil = sin umbral
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el ítem tiene umbral y su cantidad está en o por debajo de él.
func (i *InventoryItem) IsLowStock() bool {
	if i.LowStockThreshold == nil {
		return false
	}
	return i.Quantity.LessThanOrEqual(*i.LowStockThreshold)
}

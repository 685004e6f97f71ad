package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest entrada para crear un insumo.
type CreateInventoryItemRequest struct {
	Name              string           `json:"name" validate:"required,min=1,max=120"`
	Unit              string           `json:"unit" validate:"required"`
	Quantity          decimal.Decimal  `json:"quantity"` // existencia inicial, por defecto 0
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
}

// InventoryItemResponse salida de un insumo.
type InventoryItemResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Unit              string           `json:"unit"`
	Quantity          decimal.Decimal  `json:"quantity"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty"`
	IsLowStock        bool             `json:"is_low_stock"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// AdjustStockRequest ajuste manual de inventario. Change con signo: positivo repone, negativo descuenta.
type AdjustStockRequest struct {
	InventoryItemID string          `json:"inventory_item_id" validate:"required"`
	Change          decimal.Decimal `json:"change"`
	Reason          string          `json:"reason"` // manual_adjustment (defecto), purchase, spoilage, theft, correction
	Notes           string          `json:"notes"`
}

// AdjustStockResponse resultado del ajuste.
type AdjustStockResponse struct {
	Item             InventoryItemResponse `json:"item"`
	Movement         StockMovementResponse `json:"movement"`
	PreviousQuantity decimal.Decimal       `json:"previous_quantity"`
	NewQuantity      decimal.Decimal       `json:"new_quantity"`
}

// StockMovementResponse entrada del libro de movimientos.
type StockMovementResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	Change          decimal.Decimal `json:"change"`
	Reason          string          `json:"reason"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// StockMovementListResponse historial paginado de un insumo.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// LedgerConsistencyResponse compara la proyección con initial_quantity + Σ movimientos.
type LedgerConsistencyResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	MovementsTotal  decimal.Decimal `json:"movements_total"`
	Expected        decimal.Decimal `json:"expected"`
	Drift           decimal.Decimal `json:"drift"`
	Consistent      bool            `json:"consistent"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden.
type OrderItemRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"min=1"`
	SpecialNotes string `json:"special_notes"`
}

// CreateOrderRequest entrada para crear una orden desde kiosco o caja.
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1"`
	PaymentMethod string             `json:"payment_method"` // cash | gcash | card
}

// OrderItemResponse línea de orden.
type OrderItemResponse struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
	SpecialNotes   string `json:"special_notes,omitempty"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"order_number"`
	Channel       string              `json:"channel"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	Status        string              `json:"status"`
	TotalCents    int64               `json:"total_cents"`
	Total         string              `json:"total"` // formateado con símbolo de moneda
	Items         []OrderItemResponse `json:"items"`
	Deductions    []DeductionResponse `json:"deductions,omitempty"`
	OrderedAt     time.Time           `json:"ordered_at"`
}

// UpdateOrderStatusRequest cambio de estado desde la consola de caja.
type UpdateOrderStatusRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Status  string `json:"status" validate:"required"` // pending | preparing | ready | completed | cancelled
}

// OrderListResponse órdenes recientes para la consola.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Count  int             `json:"count"`
}

// SellRequest venta manual de un producto desde el admin.
type SellRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

// SellResponse resultado de la venta manual.
type SellResponse struct {
	ProductID   string              `json:"product_id"`
	ProductName string              `json:"product_name"`
	Quantity    int                 `json:"quantity"`
	Deductions  []DeductionResponse `json:"deductions"`
}

// DeductionResponse descuento aplicado a un insumo.
type DeductionResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Ingredient      string          `json:"ingredient"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"quantity"`
	Remaining       decimal.Decimal `json:"remaining"`
}

// ShortageResponse insumo insuficiente.
type ShortageResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Ingredient      string          `json:"ingredient"`
	Unit            string          `json:"unit"`
	Needed          decimal.Decimal `json:"needed"`
	Available       decimal.Decimal `json:"available"`
}

// InsufficientStockResponse cuerpo HTTP 409 cuando la venta se rechaza por existencias.
// Los campos planos describen el faltante principal.
type InsufficientStockResponse struct {
	Code       string             `json:"code"`
	Message    string             `json:"message"`
	Ingredient string             `json:"ingredient"`
	Unit       string             `json:"unit"`
	Needed     decimal.Decimal    `json:"needed"`
	Available  decimal.Decimal    `json:"available"`
	Shortages  []ShortageResponse `json:"shortages"`
}

package entity

import "time"

// Canales de venta.
const (
	OrderChannelKiosk   = "kiosk"
	OrderChannelCashier = "cashier"
	OrderChannelAdmin   = "admin"
)

// Métodos y estados de pago.
const (
	PaymentMethodCash  = "cash"
	PaymentMethodGCash = "gcash"
	PaymentMethodCard  = "card"

	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
)

// Estados de preparación de la orden (consola de caja).
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// IsOrderStatus indica si s es un estado de orden válido.
func IsOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order representa una transacción de cliente.
type Order struct {
	ID            string
	OrderNumber   string
	Channel       string
	PaymentMethod string
	PaymentStatus string
	Status        string
	TotalCents    int64
	Items         []OrderItem
	OrderedAt     time.Time
}

// OrderItem es una línea de la orden con snapshot del nombre y precio del producto.
type OrderItem struct {
	ID             string
	OrderID        string
	ProductID      string
	ProductName    string
	Quantity       int
	UnitPriceCents int64
	TotalCents     int64
	SpecialNotes   string
}

package entity

import "time"

// Estados de producto visibles en el menú.
const (
	ProductStatusAvailable   = "available"
	ProductStatusUnavailable = "unavailable"
)

// Product representa un ítem vendible del menú. El precio se maneja en centavos.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	PriceCents  int64
	Status      string
	ImageURL    string
	IsArchived  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package dto

import "time"

// CreateProductRequest entrada para crear un producto del menú.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents" validate:"min=0"`
	Status      string `json:"status"` // available (defecto) | unavailable
	ImageURL    string `json:"image_url"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	PriceCents  *int64  `json:"price_cents"`
	Status      *string `json:"status"`
	ImageURL    *string `json:"image_url"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PriceCents  int64     `json:"price_cents"`
	Status      string    `json:"status"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AvailabilityResponse resultado del cálculo de disponibilidad.
type AvailabilityResponse struct {
	CanMake            int    `json:"can_make"`
	LimitingIngredient string `json:"limiting_ingredient,omitempty"`
	HasRecipe          bool   `json:"has_recipe"`
	Unlimited          bool   `json:"unlimited"`
	StockStatus        string `json:"stock_status"` // available | low_stock | out_of_stock
}

// ProductAvailabilityResponse producto con su disponibilidad (y receta en la vista de caja).
type ProductAvailabilityResponse struct {
	ProductResponse
	Availability AvailabilityResponse `json:"availability"`
	Recipe       *RecipeResponse      `json:"recipe,omitempty"`
}

// ProductListResponse listado de productos con disponibilidad.
type ProductListResponse struct {
	Items []ProductAvailabilityResponse `json:"items"`
	Total int                           `json:"total"`
}

// AvailabilityReportItem fila del reporte de disponibilidad del admin.
type AvailabilityReportItem struct {
	ProductID          string `json:"product_id"`
	ProductName        string `json:"product_name"`
	Available          bool   `json:"available"`
	MaxServings        int    `json:"max_servings"`
	LimitingIngredient string `json:"limiting_ingredient,omitempty"`
	Reason             string `json:"reason,omitempty"` // "Out of Milk"
}

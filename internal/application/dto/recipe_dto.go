package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeIngredientRequest línea de receta enviada por el admin.
type RecipeIngredientRequest struct {
	InventoryItemID string          `json:"inventory_item_id" validate:"required"`
	QuantityNeeded  decimal.Decimal `json:"quantity_needed"`
	Unit            string          `json:"unit"` // vacío = unidad del insumo
}

// ReplaceRecipeRequest reemplaza por completo la receta de un producto.
type ReplaceRecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
}

// RecipeIngredientResponse línea de receta con existencias vigentes.
type RecipeIngredientResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	ItemName        string          `json:"item_name"`
	Unit            string          `json:"unit"`
	QuantityNeeded  decimal.Decimal `json:"quantity_needed"`
	Available       decimal.Decimal `json:"available"`
	ItemUnit        string          `json:"item_unit"`
}

// RecipeResponse receta de un producto.
type RecipeResponse struct {
	ID          string                     `json:"id"`
	ProductID   string                     `json:"product_id"`
	Ingredients []RecipeIngredientResponse `json:"ingredients"`
	CreatedAt   time.Time                  `json:"created_at"`
}

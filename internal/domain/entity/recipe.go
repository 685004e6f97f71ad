package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe es la lista de materiales de un producto (máximo una por producto).
type Recipe struct {
	ID          string
	ProductID   string
	Ingredients []RecipeIngredient // en orden de almacenamiento (Position)
	CreatedAt   time.Time
}

// RecipeIngredient es una línea de receta: cuánto insumo se consume por unidad de producto.
// Available y ItemName/ItemUnit se llenan al cargar la receta con el inventario actual.
type RecipeIngredient struct {
	ID              string
	RecipeID        string
	InventoryItemID string
	QuantityNeeded  decimal.Decimal
	Unit            string
	Position        int

	ItemName  string
	ItemUnit  string
	Available decimal.Decimal
}

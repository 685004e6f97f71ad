package inventory

import (
	"math"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// UnlimitedCanMake es el valor que se muestra para productos sin receta.
const UnlimitedCanMake = 999

// DefaultLowStockCanMake es el umbral por defecto del bucket low_stock.
const DefaultLowStockCanMake = 5

// Estados de stock para el menú.
const (
	StockStatusAvailable  = "available"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

var maxCanMake = decimal.NewFromInt(math.MaxInt32)

// Availability es el resultado del cálculo de disponibilidad de un producto.
type Availability struct {
	CanMake            int
	LimitingIngredient string // vacío si no hay insumo limitante
	LimitingItemID     string
	Unlimited          bool // sin receta o sin líneas que restrinjan
	HasRecipe          bool
}

// Unconstrained devuelve el resultado centinela de "sin restricción".
func Unconstrained(hasRecipe bool) Availability {
	return Availability{CanMake: UnlimitedCanMake, Unlimited: true, HasRecipe: hasRecipe}
}

// ComputeAvailability calcula cuántas unidades completas se pueden preparar con el
// inventario cargado en recipe (Available de cada línea) y cuál insumo es el cuello de botella.
//
//   - recipe nil: sin restricción.
//   - receta sin líneas: 0, es una mala configuración y no equivale a ilimitado.
//   - por línea con QuantityNeeded > 0: floor(Available / QuantityNeeded) en aritmética decimal exacta.
//     Existencias negativas cuentan como 0.
//   - líneas con QuantityNeeded <= 0 no restringen.
//
// Empates: gana la primera línea en orden de almacenamiento.
func ComputeAvailability(recipe *entity.Recipe) Availability {
	if recipe == nil {
		return Unconstrained(false)
	}
	if len(recipe.Ingredients) == 0 {
		return Availability{CanMake: 0, HasRecipe: true}
	}

	var (
		min      decimal.Decimal
		limiting *entity.RecipeIngredient
	)
	for i := range recipe.Ingredients {
		ing := &recipe.Ingredients[i]
		units, ok := ProducibleUnits(ing.Available, ing.QuantityNeeded)
		if !ok {
			continue
		}
		if limiting == nil || units.LessThan(min) {
			min = units
			limiting = ing
		}
	}
	if limiting == nil {
		return Unconstrained(true)
	}
	if min.GreaterThan(maxCanMake) {
		min = maxCanMake
	}
	return Availability{
		CanMake:            int(min.IntPart()),
		LimitingIngredient: limiting.ItemName,
		LimitingItemID:     limiting.InventoryItemID,
		HasRecipe:          true,
	}
}

// ProducibleUnits devuelve floor(available/needed) para una línea.
// ok=false cuando needed <= 0 (la línea no restringe).
func ProducibleUnits(available, needed decimal.Decimal) (decimal.Decimal, bool) {
	if needed.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}
	if available.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, true
	}
	// QuoRem con precisión 0 da el cociente entero truncado sin redondeo binario.
	q, _ := available.QuoRem(needed, 0)
	return q, true
}

// StockStatus clasifica canMake para el menú. threshold <= 0 usa DefaultLowStockCanMake.
func StockStatus(a Availability, threshold int) string {
	if threshold <= 0 {
		threshold = DefaultLowStockCanMake
	}
	switch {
	case a.Unlimited:
		return StockStatusAvailable
	case a.CanMake <= 0:
		return StockStatusOutOfStock
	case a.CanMake <= threshold:
		return StockStatusLowStock
	default:
		return StockStatusAvailable
	}
}

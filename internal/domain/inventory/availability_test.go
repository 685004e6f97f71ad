package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(itemID, name, needed, available string) entity.RecipeIngredient {
	return entity.RecipeIngredient{
		InventoryItemID: itemID,
		ItemName:        name,
		ItemUnit:        "L",
		Unit:            "L",
		QuantityNeeded:  d(needed),
		Available:       d(available),
	}
}

func recipeOf(lines ...entity.RecipeIngredient) *entity.Recipe {
	return &entity.Recipe{ID: "r1", ProductID: "p1", Ingredients: lines}
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeAvailability
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeAvailability_DivisionEntera(t *testing.T) {
	a := inventory.ComputeAvailability(recipeOf(line("milk", "Milk", "2.5", "10")))
	assert.Equal(t, 4, a.CanMake, "10 / 2.5 = 4 exacto")
	assert.Equal(t, "Milk", a.LimitingIngredient)

	a = inventory.ComputeAvailability(recipeOf(line("milk", "Milk", "2.5", "9.99")))
	assert.Equal(t, 3, a.CanMake, "9.99 / 2.5 debe truncar a 3")
}

func TestComputeAvailability_DecimalesSinErrorBinario(t *testing.T) {
	// 0.3 * 3 = 0.9 exacto; en float64 0.9/0.3 da 2.9999999999999996.
	a := inventory.ComputeAvailability(recipeOf(line("milk", "Milk", "0.3", "0.9")))
	assert.Equal(t, 3, a.CanMake)
}

func TestComputeAvailability_MinimoEntreLineas(t *testing.T) {
	a := inventory.ComputeAvailability(recipeOf(
		line("a", "Espresso", "1", "5"),
		line("b", "Milk", "1", "2"),
		line("c", "Cups", "1", "8"),
	))
	assert.Equal(t, 2, a.CanMake)
	assert.Equal(t, "Milk", a.LimitingIngredient)
	assert.Equal(t, "b", a.LimitingItemID)
	assert.True(t, a.HasRecipe)
	assert.False(t, a.Unlimited)
}

func TestComputeAvailability_EmpatePrimeraLinea(t *testing.T) {
	a := inventory.ComputeAvailability(recipeOf(
		line("a", "Espresso", "1", "3"),
		line("b", "Milk", "2", "6"),
	))
	assert.Equal(t, 3, a.CanMake)
	assert.Equal(t, "Espresso", a.LimitingIngredient, "en empate gana la primera línea almacenada")
}

func TestComputeAvailability_SinReceta(t *testing.T) {
	a := inventory.ComputeAvailability(nil)
	assert.True(t, a.Unlimited)
	assert.Equal(t, inventory.UnlimitedCanMake, a.CanMake)
	assert.Empty(t, a.LimitingIngredient)
	assert.False(t, a.HasRecipe)
}

func TestComputeAvailability_RecetaVacia(t *testing.T) {
	a := inventory.ComputeAvailability(recipeOf())
	assert.Equal(t, 0, a.CanMake, "receta sin líneas no es ilimitada")
	assert.False(t, a.Unlimited)
	assert.Empty(t, a.LimitingIngredient)
}

func TestComputeAvailability_ExistenciaNegativa(t *testing.T) {
	a := inventory.ComputeAvailability(recipeOf(
		line("a", "Milk", "0.3", "-1.5"),
		line("b", "Cups", "1", "40"),
	))
	assert.Equal(t, 0, a.CanMake)
	assert.Equal(t, "Milk", a.LimitingIngredient)
}

func TestComputeAvailability_LineasNoPositivasNoRestringen(t *testing.T) {
	a := inventory.ComputeAvailability(recipeOf(
		line("a", "Sugar", "0", "0"),
		line("b", "Milk", "0.5", "2"),
	))
	assert.Equal(t, 4, a.CanMake)
	assert.Equal(t, "Milk", a.LimitingIngredient)

	a = inventory.ComputeAvailability(recipeOf(line("a", "Sugar", "-1", "0")))
	assert.True(t, a.Unlimited, "si ninguna línea restringe el resultado es el centinela")
	assert.True(t, a.HasRecipe)
}

func TestComputeAvailability_MilkLatte(t *testing.T) {
	a := inventory.ComputeAvailability(recipeOf(line("milk", "Milk", "0.3", "5")))
	assert.Equal(t, 16, a.CanMake)
}

// ──────────────────────────────────────────────────────────────────────────────
// StockStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestStockStatus(t *testing.T) {
	cases := []struct {
		name string
		a    inventory.Availability
		want string
	}{
		{"agotado", inventory.Availability{CanMake: 0, HasRecipe: true}, inventory.StockStatusOutOfStock},
		{"bajo", inventory.Availability{CanMake: 5, HasRecipe: true}, inventory.StockStatusLowStock},
		{"disponible", inventory.Availability{CanMake: 6, HasRecipe: true}, inventory.StockStatusAvailable},
		{"ilimitado", inventory.Unconstrained(false), inventory.StockStatusAvailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.StockStatus(tc.a, 0))
		})
	}
	assert.Equal(t, inventory.StockStatusLowStock, inventory.StockStatus(inventory.Availability{CanMake: 8}, 10))
}

// ──────────────────────────────────────────────────────────────────────────────
// AggregateDemand / CheckSufficiency
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregateDemand_SumaPorInsumo(t *testing.T) {
	latte := recipeOf(line("milk", "Milk", "0.3", "0"), line("bean", "Beans", "0.02", "0"))
	mocha := recipeOf(line("milk", "Milk", "0.25", "0"), line("choc", "Chocolate", "0.05", "0"))

	reqs := inventory.AggregateDemand([]inventory.DemandLine{
		{ProductID: "latte", ProductName: "Latte", Quantity: 2, Recipe: latte},
		{ProductID: "mocha", ProductName: "Mocha", Quantity: 1, Recipe: mocha},
		{ProductID: "water", ProductName: "Water", Quantity: 3},
	})
	require.Len(t, reqs, 3)
	assert.Equal(t, "milk", reqs[0].InventoryItemID)
	assert.True(t, d("0.85").Equal(reqs[0].Needed), "0.6 + 0.25 = 0.85, obtenido %s", reqs[0].Needed)
	require.Len(t, reqs[0].Uses, 2)
	assert.Equal(t, "Latte", reqs[0].Uses[0].ProductName)
	assert.True(t, d("0.04").Equal(reqs[1].Needed))
	assert.True(t, d("0.05").Equal(reqs[2].Needed))
}

func TestCheckSufficiency_ReportaTodosLosFaltantes(t *testing.T) {
	reqs := []inventory.Requirement{
		{InventoryItemID: "milk", Name: "Milk", Unit: "L", Needed: d("0.85")},
		{InventoryItemID: "bean", Name: "Beans", Unit: "kg", Needed: d("0.04")},
		{InventoryItemID: "choc", Name: "Chocolate", Unit: "kg", Needed: d("0.05")},
	}
	shortages := inventory.CheckSufficiency(reqs, map[string]decimal.Decimal{
		"milk": d("0.6"),
		"bean": d("1"),
		"choc": d("0.01"),
	})
	require.Len(t, shortages, 2)
	assert.Equal(t, "Milk", shortages[0].Ingredient, "el primer faltante es el principal")
	assert.True(t, d("0.6").Equal(shortages[0].Available))
	assert.Equal(t, "Chocolate", shortages[1].Ingredient)

	assert.Empty(t, inventory.CheckSufficiency(reqs[1:2], map[string]decimal.Decimal{"bean": d("0.04")}),
		"existencia exacta alcanza")
}

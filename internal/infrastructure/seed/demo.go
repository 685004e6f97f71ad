// Package seed carga el catálogo demo de la cafetería (insumos, productos y recetas).
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

type demoItem struct {
	name      string
	unit      string
	quantity  string
	threshold string
}

type demoLine struct {
	item   string
	needed string
}

type demoProduct struct {
	name        string
	category    string
	description string
	priceCents  int64
	recipe      []demoLine // nil = sin receta (no descuenta inventario)
}

var demoItems = []demoItem{
	{"Milk", "L", "10", "2"},
	{"Coffee Beans", "kg", "2", "0.5"},
	{"Chocolate Syrup", "L", "1", "0.2"},
	{"Sugar", "kg", "3", "0.5"},
	{"Cups", "pcs", "200", "50"},
}

var demoProducts = []demoProduct{
	{"Latte", "Coffee", "Espresso with steamed milk", 15000, []demoLine{{"Milk", "0.2"}, {"Coffee Beans", "0.018"}, {"Cups", "1"}}},
	{"Espresso", "Coffee", "Double shot", 9000, []demoLine{{"Coffee Beans", "0.018"}, {"Cups", "1"}}},
	{"Mocha", "Coffee", "Espresso, chocolate and milk", 17000, []demoLine{{"Milk", "0.2"}, {"Coffee Beans", "0.018"}, {"Chocolate Syrup", "0.03"}, {"Cups", "1"}}},
	{"Hot Chocolate", "Non-Coffee", "", 13000, []demoLine{{"Milk", "0.25"}, {"Chocolate Syrup", "0.05"}, {"Sugar", "0.01"}, {"Cups", "1"}}},
	{"Croissant", "Pastry", "Butter croissant", 8500, nil},
}

// Summary resumen de lo cargado.
type Summary struct {
	Items    int
	Products int
	Recipes  int
	Skipped  bool // ya había insumos; no se tocó nada
}

// Demo carga el catálogo demo en una sola transacción. Si ya existen insumos no hace nada.
func Demo(ctx context.Context, runner inventory.TxRunner) (Summary, error) {
	var sum Summary
	err := runner.RunSale(ctx, func(repos inventory.TxRepos) error {
		existing, err := repos.Items.List(ctx)
		if err != nil {
			return fmt.Errorf("listar insumos: %w", err)
		}
		if len(existing) > 0 {
			sum.Skipped = true
			return nil
		}
		now := time.Now().UTC()

		ids := make(map[string]string, len(demoItems))
		for _, it := range demoItems {
			qty := decimal.RequireFromString(it.quantity)
			threshold := decimal.RequireFromString(it.threshold)
			item := &entity.InventoryItem{
				ID:                uuid.NewString(),
				Name:              it.name,
				Unit:              it.unit,
				Quantity:          qty,
				InitialQuantity:   qty,
				LowStockThreshold: &threshold,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := repos.Items.Create(ctx, item); err != nil {
				return fmt.Errorf("crear insumo %s: %w", it.name, err)
			}
			ids[it.name] = item.ID
			sum.Items++
		}

		for _, p := range demoProducts {
			product := &entity.Product{
				ID:          uuid.NewString(),
				Name:        p.name,
				Description: p.description,
				Category:    p.category,
				PriceCents:  p.priceCents,
				Status:      entity.ProductStatusAvailable,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := repos.Products.Create(ctx, product); err != nil {
				return fmt.Errorf("crear producto %s: %w", p.name, err)
			}
			sum.Products++
			if p.recipe == nil {
				continue
			}
			recipe := &entity.Recipe{ID: uuid.NewString(), ProductID: product.ID, CreatedAt: now}
			for i, l := range p.recipe {
				recipe.Ingredients = append(recipe.Ingredients, entity.RecipeIngredient{
					ID:              uuid.NewString(),
					RecipeID:        recipe.ID,
					InventoryItemID: ids[l.item],
					QuantityNeeded:  decimal.RequireFromString(l.needed),
					Position:        i,
				})
			}
			if err := repos.Recipes.Replace(ctx, recipe); err != nil {
				return fmt.Errorf("receta %s: %w", p.name, err)
			}
			sum.Recipes++
		}
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("seed demo: %w", err)
	}
	return sum, nil
}

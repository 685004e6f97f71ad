package inventory

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de venta.
type TxRepos struct {
	Items     repository.InventoryItemRepository
	Movements repository.StockMovementRepository
	Recipes   repository.RecipeRepository
	Products  repository.ProductRepository
	Orders    repository.OrderRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a ella.
// Si fn retorna error se hace Rollback; si no, Commit. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error

	// RunSale abre una transacción con todos los repos que necesita una venta u orden.
	RunSale(ctx context.Context, fn func(repos TxRepos) error) error
}

// Metrics registra contadores del libro de inventario.
type Metrics interface {
	StockAdjusted(reason string)
}

type nopMetrics struct{}

func (nopMetrics) StockAdjusted(string) {}

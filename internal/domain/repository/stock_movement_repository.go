package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockMovementRepository libro de movimientos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	// ListByItem devuelve los movimientos del ítem, más recientes primero.
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error)
	SumByItem(ctx context.Context, itemID string) (decimal.Decimal, error)
}

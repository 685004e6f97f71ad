package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryItemRepository puerto de persistencia para insumos.
// GetByID y GetForUpdate devuelven (nil, nil) si el ítem no existe.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate lee el ítem bloqueando su fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
	List(ctx context.Context) ([]*entity.InventoryItem, error)
	// ListLowStock devuelve ítems con umbral y quantity <= umbral, ascendente por quantity.
	ListLowStock(ctx context.Context, limit int) ([]*entity.InventoryItem, error)
}

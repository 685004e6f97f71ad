package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia de órdenes con sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByNumber devuelve (nil, nil) si no existe.
	GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// ListRecent devuelve las últimas limit órdenes con sus líneas, más reciente primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.Order, error)
	// UpdateStatus cambia el estado de preparación. ErrNotFound si no existe.
	UpdateStatus(ctx context.Context, id, status string) error
}

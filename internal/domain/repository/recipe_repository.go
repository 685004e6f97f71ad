package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// RecipeRepository puerto de persistencia de recetas.
// Las lecturas llenan ItemName, ItemUnit y Available de cada línea con el inventario vigente.
type RecipeRepository interface {
	// GetByProductID devuelve (nil, nil) si el producto no tiene receta.
	GetByProductID(ctx context.Context, productID string) (*entity.Recipe, error)
	ListByProductIDs(ctx context.Context, productIDs []string) (map[string]*entity.Recipe, error)
	// Replace sustituye por completo la receta del producto (cabecera y líneas).
	Replace(ctx context.Context, recipe *entity.Recipe) error
	// DeleteByProductID devuelve domain.ErrNotFound si no había receta.
	DeleteByProductID(ctx context.Context, productID string) error
}

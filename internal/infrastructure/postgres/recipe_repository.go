package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo recetas sobre PostgreSQL (product_recipes + recipe_ingredients).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Las líneas se leen con el nombre, unidad y existencia vigentes del insumo.
const recipeSelect = `
	SELECT r.id, r.product_id, r.created_at,
	       ri.id, ri.inventory_item_id, ri.quantity_needed, ri.unit, ri.position,
	       i.name, i.unit, i.quantity
	FROM product_recipes r
	LEFT JOIN recipe_ingredients ri ON ri.recipe_id = r.id
	LEFT JOIN inventory_items i ON i.id = ri.inventory_item_id`

// GetByProductID devuelve la receta del producto o (nil, nil) si no tiene.
func (r *RecipeRepo) GetByProductID(ctx context.Context, productID string) (*entity.Recipe, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, nil
	}
	recipes, err := r.query(ctx, recipeSelect+` WHERE r.product_id = $1 ORDER BY ri.position`, productID)
	if err != nil {
		return nil, err
	}
	return recipes[productID], nil
}

// ListByProductIDs carga las recetas de varios productos en una sola consulta.
func (r *RecipeRepo) ListByProductIDs(ctx context.Context, productIDs []string) (map[string]*entity.Recipe, error) {
	ids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		if _, err := uuid.Parse(id); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return map[string]*entity.Recipe{}, nil
	}
	return r.query(ctx, recipeSelect+` WHERE r.product_id = ANY($1::uuid[]) ORDER BY r.product_id, ri.position`, ids)
}

func (r *RecipeRepo) query(ctx context.Context, query string, args ...any) (map[string]*entity.Recipe, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*entity.Recipe)
	for rows.Next() {
		var (
			rec       entity.Recipe
			lineID    *string
			itemID    *string
			needed    decimal.NullDecimal
			lineUnit  *string
			position  *int
			itemName  *string
			itemUnit  *string
			available decimal.NullDecimal
		)
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.CreatedAt,
			&lineID, &itemID, &needed, &lineUnit, &position,
			&itemName, &itemUnit, &available); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		current, ok := out[rec.ProductID]
		if !ok {
			current = &entity.Recipe{ID: rec.ID, ProductID: rec.ProductID, CreatedAt: rec.CreatedAt}
			out[rec.ProductID] = current
		}
		if lineID == nil {
			continue // receta sin líneas
		}
		current.Ingredients = append(current.Ingredients, entity.RecipeIngredient{
			ID:              *lineID,
			RecipeID:        rec.ID,
			InventoryItemID: emptyIfNull(itemID),
			QuantityNeeded:  needed.Decimal,
			Unit:            emptyIfNull(lineUnit),
			Position:        derefInt(position),
			ItemName:        emptyIfNull(itemName),
			ItemUnit:        emptyIfNull(itemUnit),
			Available:       available.Decimal,
		})
	}
	return out, rows.Err()
}

// Replace borra la receta anterior del producto (las líneas caen en cascada) e inserta la nueva.
func (r *RecipeRepo) Replace(ctx context.Context, recipe *entity.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now()
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM product_recipes WHERE product_id = $1`, recipe.ProductID); err != nil {
		return fmt.Errorf("delete previous recipe: %w", err)
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_recipes (id, product_id, created_at) VALUES ($1, $2, $3)`,
		recipe.ID, recipe.ProductID, recipe.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create recipe: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range recipe.Ingredients {
		ing := &recipe.Ingredients[i]
		if ing.ID == "" {
			ing.ID = uuid.New().String()
		}
		ing.RecipeID = recipe.ID
		batch.Queue(`
			INSERT INTO recipe_ingredients (id, recipe_id, inventory_item_id, quantity_needed, unit, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			ing.ID, ing.RecipeID, ing.InventoryItemID, ing.QuantityNeeded, ing.Unit, ing.Position)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create recipe ingredients: %w", err)
	}
	return nil
}

// DeleteByProductID elimina la receta del producto.
func (r *RecipeRepo) DeleteByProductID(ctx context.Context, productID string) error {
	if _, err := uuid.Parse(productID); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM product_recipes WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// sendBatch requiere que q soporte batches (pool y tx lo hacen); si no, ejecuta en serie.
func (r *RecipeRepo) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	if b, ok := r.q.(batcher); ok {
		return b.SendBatch(ctx, batch).Close()
	}
	for _, qq := range batch.QueuedQueries {
		if _, err := r.q.Exec(ctx, qq.SQL, qq.Arguments...); err != nil {
			return err
		}
	}
	return nil
}

type batcher interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

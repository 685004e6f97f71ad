package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	appinventory "github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

// RecipeUseCase lectura y edición de recetas. Una receta se reemplaza completa en cada edición.
type RecipeUseCase struct {
	txRunner    appinventory.TxRunner
	recipeRepo  repository.RecipeRepository
	productRepo repository.ProductRepository
	activity    activity.Logger
	log         *logger.Logger
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(
	txRunner appinventory.TxRunner,
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	activityLog activity.Logger,
	log *logger.Logger,
) *RecipeUseCase {
	if activityLog == nil {
		activityLog = activity.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RecipeUseCase{
		txRunner:    txRunner,
		recipeRepo:  recipeRepo,
		productRepo: productRepo,
		activity:    activityLog,
		log:         log,
	}
}

// Get devuelve la receta del producto con existencias vigentes.
func (uc *RecipeUseCase) Get(ctx context.Context, productID string) (*dto.RecipeResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	recipe, err := uc.recipeRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, fmt.Errorf("receta de %s: %w", product.Name, domain.ErrNotFound)
	}
	return ToRecipeResponse(recipe), nil
}

// Replace sustituye la receta del producto.
// quantity_needed <= 0 se rechaza con ErrInvalidRecipeLine; una unidad distinta a la del
// insumo se acepta y queda en el log como advertencia (no hay conversión de unidades).
func (uc *RecipeUseCase) Replace(ctx context.Context, productID string, in dto.ReplaceRecipeRequest, actor activity.Actor) (*dto.RecipeResponse, error) {
	if len(in.Ingredients) == 0 {
		return nil, fmt.Errorf("la receta necesita al menos un insumo: %w", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(in.Ingredients))
	for _, l := range in.Ingredients {
		if strings.TrimSpace(l.InventoryItemID) == "" {
			return nil, domain.ErrInvalidInput
		}
		if l.QuantityNeeded.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("insumo %s: %w", l.InventoryItemID, domain.ErrInvalidRecipeLine)
		}
		if seen[l.InventoryItemID] {
			return nil, fmt.Errorf("insumo %s repetido: %w", l.InventoryItemID, domain.ErrInvalidInput)
		}
		seen[l.InventoryItemID] = true
	}

	var (
		saved   *entity.Recipe
		product *entity.Product
	)
	err := uc.txRunner.RunSale(ctx, func(repos appinventory.TxRepos) error {
		var err error
		product, err = repos.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		recipe := &entity.Recipe{
			ID:        uuid.New().String(),
			ProductID: productID,
			CreatedAt: time.Now(),
		}
		for i, l := range in.Ingredients {
			item, err := repos.Items.GetByID(ctx, l.InventoryItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("insumo %s: %w", l.InventoryItemID, domain.ErrNotFound)
			}
			unit := strings.TrimSpace(l.Unit)
			if unit == "" {
				unit = item.Unit
			} else if !strings.EqualFold(unit, item.Unit) {
				uc.log.Warn().
					Str("product_id", productID).
					Str("inventory_item_id", item.ID).
					Str("recipe_unit", unit).
					Str("item_unit", item.Unit).
					Msg("unidad de receta distinta a la del insumo; se descuenta sin conversión")
			}
			recipe.Ingredients = append(recipe.Ingredients, entity.RecipeIngredient{
				ID:              uuid.New().String(),
				RecipeID:        recipe.ID,
				InventoryItemID: item.ID,
				QuantityNeeded:  l.QuantityNeeded,
				Unit:            unit,
				Position:        i,
				ItemName:        item.Name,
				ItemUnit:        item.Unit,
				Available:       item.Quantity,
			})
		}
		if err := repos.Recipes.Replace(ctx, recipe); err != nil {
			return err
		}
		saved = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}

	lines := make([]map[string]any, 0, len(saved.Ingredients))
	for _, ing := range saved.Ingredients {
		lines = append(lines, map[string]any{
			"inventory_item_id": ing.InventoryItemID,
			"ingredient":        ing.ItemName,
			"quantity_needed":   ing.QuantityNeeded.String(),
			"unit":              ing.Unit,
		})
	}
	_ = uc.activity.Log(ctx, activity.Entry{
		Action:      activity.ActionUpdate,
		EntityType:  activity.EntityRecipe,
		EntityID:    saved.ID,
		EntityName:  product.Name,
		Description: fmt.Sprintf("Updated recipe for %s (%d ingredients)", product.Name, len(saved.Ingredients)),
		Metadata:    map[string]any{"product_id": productID, "ingredients": lines},
		Actor:       actor,
	})
	return ToRecipeResponse(saved), nil
}

// Delete elimina la receta; el producto queda sin restricción de inventario.
func (uc *RecipeUseCase) Delete(ctx context.Context, productID string, actor activity.Actor) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.recipeRepo.DeleteByProductID(ctx, productID); err != nil {
		return err
	}
	_ = uc.activity.Log(ctx, activity.Entry{
		Action:      activity.ActionDelete,
		EntityType:  activity.EntityRecipe,
		EntityID:    productID,
		EntityName:  product.Name,
		Description: "Deleted recipe for " + product.Name,
		Actor:       actor,
	})
	return nil
}

// ToRecipeResponse mapea la receta al DTO.
func ToRecipeResponse(r *entity.Recipe) *dto.RecipeResponse {
	if r == nil {
		return nil
	}
	lines := make([]dto.RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		lines = append(lines, dto.RecipeIngredientResponse{
			InventoryItemID: ing.InventoryItemID,
			ItemName:        ing.ItemName,
			Unit:            ing.Unit,
			QuantityNeeded:  ing.QuantityNeeded,
			Available:       ing.Available,
			ItemUnit:        ing.ItemUnit,
		})
	}
	return &dto.RecipeResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Ingredients: lines,
		CreatedAt:   r.CreatedAt,
	}
}

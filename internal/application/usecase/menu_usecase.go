package usecase

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// MenuUseCase arma las vistas de disponibilidad (kiosco, caja, admin) con el mismo cálculo.
type MenuUseCase struct {
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
	lowStockAt  int
}

// NewMenuUseCase construye el caso de uso. lowStockAt es el umbral de canMake para low_stock.
func NewMenuUseCase(productRepo repository.ProductRepository, recipeRepo repository.RecipeRepository, lowStockAt int) *MenuUseCase {
	if lowStockAt <= 0 {
		lowStockAt = inventory.DefaultLowStockCanMake
	}
	return &MenuUseCase{productRepo: productRepo, recipeRepo: recipeRepo, lowStockAt: lowStockAt}
}

type productWithRecipe struct {
	product *entity.Product
	recipe  *entity.Recipe
	avail   inventory.Availability
}

func (uc *MenuUseCase) load(ctx context.Context, filter repository.ProductFilter) ([]productWithRecipe, error) {
	products, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	recipes, err := uc.recipeRepo.ListByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]productWithRecipe, 0, len(products))
	for _, p := range products {
		r := recipes[p.ID]
		out = append(out, productWithRecipe{product: p, recipe: r, avail: inventory.ComputeAvailability(r)})
	}
	return out, nil
}

// KioskMenu productos disponibles, no archivados, que se pueden preparar (o sin receta).
func (uc *MenuUseCase) KioskMenu(ctx context.Context) (*dto.ProductListResponse, error) {
	rows, err := uc.load(ctx, repository.ProductFilter{OnlyAvailable: true})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductAvailabilityResponse, 0, len(rows))
	for _, r := range rows {
		if r.avail.CanMake <= 0 {
			continue
		}
		items = append(items, uc.toResponse(r, false))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// CashierProducts todos los productos no archivados con disponibilidad y receta detallada.
func (uc *MenuUseCase) CashierProducts(ctx context.Context) (*dto.ProductListResponse, error) {
	rows, err := uc.load(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductAvailabilityResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, uc.toResponse(r, true))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// AdminProducts listado del admin; includeArchived agrega los archivados.
func (uc *MenuUseCase) AdminProducts(ctx context.Context, includeArchived bool) (*dto.ProductListResponse, error) {
	rows, err := uc.load(ctx, repository.ProductFilter{IncludeArchived: includeArchived})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductAvailabilityResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, uc.toResponse(r, false))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// ProductAvailability disponibilidad de un producto con su receta.
func (uc *MenuUseCase) ProductAvailability(ctx context.Context, productID string) (*dto.ProductAvailabilityResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	recipe, err := uc.recipeRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := uc.toResponse(productWithRecipe{product: p, recipe: recipe, avail: inventory.ComputeAvailability(recipe)}, true)
	return &out, nil
}

// AvailabilityReport reporte de productos con receta: máximo de porciones y motivo si están agotados.
func (uc *MenuUseCase) AvailabilityReport(ctx context.Context) ([]dto.AvailabilityReportItem, error) {
	rows, err := uc.load(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]dto.AvailabilityReportItem, 0, len(rows))
	for _, r := range rows {
		if r.recipe == nil {
			continue
		}
		item := dto.AvailabilityReportItem{
			ProductID:          r.product.ID,
			ProductName:        r.product.Name,
			Available:          r.avail.CanMake > 0,
			MaxServings:        r.avail.CanMake,
			LimitingIngredient: r.avail.LimitingIngredient,
		}
		if r.avail.Unlimited {
			item.MaxServings = inventory.UnlimitedCanMake
		}
		if !item.Available {
			if r.avail.LimitingIngredient != "" {
				item.Reason = "Out of " + r.avail.LimitingIngredient
			} else {
				item.Reason = "Recipe has no ingredients"
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (uc *MenuUseCase) toResponse(r productWithRecipe, withRecipe bool) dto.ProductAvailabilityResponse {
	out := dto.ProductAvailabilityResponse{
		ProductResponse: *ToProductResponse(r.product),
		Availability:    ToAvailabilityResponse(r.avail, uc.lowStockAt),
	}
	if withRecipe {
		out.Recipe = ToRecipeResponse(r.recipe)
	}
	return out
}

// ToAvailabilityResponse mapea el resultado del cálculo al DTO.
func ToAvailabilityResponse(a inventory.Availability, lowStockAt int) dto.AvailabilityResponse {
	return dto.AvailabilityResponse{
		CanMake:            a.CanMake,
		LimitingIngredient: a.LimitingIngredient,
		HasRecipe:          a.HasRecipe,
		Unlimited:          a.Unlimited,
		StockStatus:        inventory.StockStatus(a, lowStockAt),
	}
}

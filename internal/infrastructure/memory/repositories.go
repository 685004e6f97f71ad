package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var (
	_ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.RecipeRepository        = (*RecipeRepo)(nil)
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
)

// ── Inventory items ───────────────────────────────────────────────────────────

// InventoryItemRepo insumos en memoria.
type InventoryItemRepo struct{ a access }

func (r *InventoryItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	return r.a.write("item.create", func(d *dataset) error {
		for _, it := range d.items {
			if it.Name == item.Name {
				return domain.ErrDuplicate
			}
		}
		d.items[item.ID] = *item
		return nil
	})
}

func (r *InventoryItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.a.read(func(d *dataset) error {
		if it, ok := d.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: las transacciones ya están serializadas.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryItemRepo) UpdateQuantity(_ context.Context, id string, quantity decimal.Decimal) error {
	return r.a.write("item.update_quantity", func(d *dataset) error {
		it, ok := d.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		it.Quantity = quantity
		d.items[id] = it
		return nil
	})
}

func (r *InventoryItemRepo) List(_ context.Context) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.a.read(func(d *dataset) error {
		out = sortedItems(d.items)
		return nil
	})
	return out, err
}

func (r *InventoryItemRepo) ListLowStock(_ context.Context, limit int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.a.read(func(d *dataset) error {
		for _, it := range sortedItems(d.items) {
			if it.IsLowStock() {
				out = append(out, it)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity.LessThan(out[j].Quantity) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

// ── Stock movements ───────────────────────────────────────────────────────────

// StockMovementRepo libro de movimientos en memoria.
type StockMovementRepo struct{ a access }

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.a.write("movement.create", func(d *dataset) error {
		if _, ok := d.items[m.InventoryItemID]; !ok {
			return domain.ErrNotFound
		}
		d.movements = append(d.movements, *m)
		return nil
	})
}

func (r *StockMovementRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.a.read(func(d *dataset) error {
		for i := len(d.movements) - 1; i >= 0; i-- {
			if d.movements[i].InventoryItemID == itemID {
				m := d.movements[i]
				out = append(out, &m)
			}
		}
		return nil
	})
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *StockMovementRepo) SumByItem(_ context.Context, itemID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.a.read(func(d *dataset) error {
		for _, m := range d.movements {
			if m.InventoryItemID == itemID {
				sum = sum.Add(m.Change)
			}
		}
		return nil
	})
	return sum, err
}

// ── Recipes ───────────────────────────────────────────────────────────────────

// RecipeRepo recetas en memoria.
type RecipeRepo struct{ a access }

// withLive copia la receta y llena cada línea con el inventario vigente.
func withLive(d *dataset, r entity.Recipe) *entity.Recipe {
	out := r
	out.Ingredients = make([]entity.RecipeIngredient, len(r.Ingredients))
	copy(out.Ingredients, r.Ingredients)
	sort.SliceStable(out.Ingredients, func(i, j int) bool { return out.Ingredients[i].Position < out.Ingredients[j].Position })
	for i := range out.Ingredients {
		if it, ok := d.items[out.Ingredients[i].InventoryItemID]; ok {
			out.Ingredients[i].ItemName = it.Name
			out.Ingredients[i].ItemUnit = it.Unit
			out.Ingredients[i].Available = it.Quantity
		}
	}
	return &out
}

func (r *RecipeRepo) GetByProductID(_ context.Context, productID string) (*entity.Recipe, error) {
	var out *entity.Recipe
	err := r.a.read(func(d *dataset) error {
		if rec, ok := d.recipes[productID]; ok {
			out = withLive(d, rec)
		}
		return nil
	})
	return out, err
}

func (r *RecipeRepo) ListByProductIDs(_ context.Context, productIDs []string) (map[string]*entity.Recipe, error) {
	out := make(map[string]*entity.Recipe)
	err := r.a.read(func(d *dataset) error {
		for _, id := range productIDs {
			if rec, ok := d.recipes[id]; ok {
				out[id] = withLive(d, rec)
			}
		}
		return nil
	})
	return out, err
}

func (r *RecipeRepo) Replace(_ context.Context, recipe *entity.Recipe) error {
	return r.a.write("recipe.replace", func(d *dataset) error {
		if _, ok := d.products[recipe.ProductID]; !ok {
			return domain.ErrNotFound
		}
		stored := *recipe
		stored.Ingredients = make([]entity.RecipeIngredient, len(recipe.Ingredients))
		for i, ing := range recipe.Ingredients {
			if _, ok := d.items[ing.InventoryItemID]; !ok {
				return domain.ErrNotFound
			}
			ing.ItemName, ing.ItemUnit, ing.Available = "", "", decimal.Zero
			stored.Ingredients[i] = ing
		}
		d.recipes[recipe.ProductID] = stored
		return nil
	})
}

func (r *RecipeRepo) DeleteByProductID(_ context.Context, productID string) error {
	return r.a.write("recipe.delete", func(d *dataset) error {
		if _, ok := d.recipes[productID]; !ok {
			return domain.ErrNotFound
		}
		delete(d.recipes, productID)
		return nil
	})
}

// ── Products ──────────────────────────────────────────────────────────────────

// ProductRepo productos en memoria.
type ProductRepo struct{ a access }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.a.write("product.create", func(d *dataset) error {
		if _, ok := d.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(d *dataset) error {
		if p, ok := d.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.a.write("product.update", func(d *dataset) error {
		if _, ok := d.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.read(func(d *dataset) error {
		for _, p := range d.products {
			if p.IsArchived && !filter.IncludeArchived {
				continue
			}
			if filter.OnlyAvailable && p.Status != entity.ProductStatusAvailable {
				continue
			}
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, err
}

func (r *ProductRepo) SetArchived(_ context.Context, id string, archived bool) error {
	return r.a.write("product.archive", func(d *dataset) error {
		p, ok := d.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.IsArchived = archived
		d.products[id] = p
		return nil
	})
}

// ── Orders ────────────────────────────────────────────────────────────────────

// OrderRepo órdenes en memoria.
type OrderRepo struct{ a access }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.a.write("order.create", func(d *dataset) error {
		if _, ok := d.orders[o.OrderNumber]; ok {
			return domain.ErrDuplicate
		}
		stored := *o
		stored.Items = append([]entity.OrderItem(nil), o.Items...)
		d.orders[o.OrderNumber] = stored
		return nil
	})
}

func (r *OrderRepo) GetByNumber(_ context.Context, number string) (*entity.Order, error) {
	var out *entity.Order
	err := r.a.read(func(d *dataset) error {
		if o, ok := d.orders[number]; ok {
			o.Items = append([]entity.OrderItem(nil), o.Items...)
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.a.read(func(d *dataset) error {
		for _, o := range d.orders {
			if o.ID == id {
				o.Items = append([]entity.OrderItem(nil), o.Items...)
				out = &o
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) ListRecent(_ context.Context, limit int) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.a.read(func(d *dataset) error {
		for _, o := range d.orders {
			o.Items = append([]entity.OrderItem(nil), o.Items...)
			out = append(out, &o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderedAt.Equal(out[j].OrderedAt) {
			return out[i].OrderNumber > out[j].OrderNumber
		}
		return out[i].OrderedAt.After(out[j].OrderedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.a.write("order.update_status", func(d *dataset) error {
		for number, o := range d.orders {
			if o.ID == id {
				o.Status = status
				d.orders[number] = o
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

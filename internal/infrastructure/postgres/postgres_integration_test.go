package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cafe-pos-api/pkg/config"
)

// Requiere TEST_DATABASE_URL apuntando a una base desechable.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido; se omiten tests de integración")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type pgFixture struct {
	pool    *pgxpool.Pool
	repos   appinventory.TxRepos
	tx      *postgres.TxRunner
	milk    string
	latte   string
	ledger  *appinventory.StockLedger
	coord   *sales.Coordinator
	suffix  string
	product *entity.Product
}

func newPgFixture(t *testing.T, milkQty string) *pgFixture {
	t.Helper()
	ctx := context.Background()
	pool := testPool(t)
	f := &pgFixture{pool: pool, repos: postgres.Repos(pool), tx: postgres.NewTxRunner(pool), suffix: uuid.NewString()[:8]}

	item := &entity.InventoryItem{Name: "Milk " + f.suffix, Unit: "L", Quantity: dec(milkQty), InitialQuantity: dec(milkQty)}
	require.NoError(t, f.repos.Items.Create(ctx, item))
	f.milk = item.ID

	f.product = &entity.Product{Name: "Latte " + f.suffix, Category: "coffee", PriceCents: 15000, Status: entity.ProductStatusAvailable}
	require.NoError(t, f.repos.Products.Create(ctx, f.product))
	f.latte = f.product.ID

	require.NoError(t, f.repos.Recipes.Replace(ctx, &entity.Recipe{
		ProductID:   f.latte,
		Ingredients: []entity.RecipeIngredient{{InventoryItemID: f.milk, QuantityNeeded: dec("0.3"), Unit: "L"}},
	}))

	f.ledger = appinventory.NewStockLedger(f.tx, f.repos.Items, f.repos.Movements)
	f.coord = sales.NewCoordinator(f.tx, f.ledger, nil, nil)
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestPostgres_RecetaConExistenciaVigente(t *testing.T) {
	f := newPgFixture(t, "5")
	ctx := context.Background()

	recipe, err := f.repos.Recipes.GetByProductID(ctx, f.latte)
	require.NoError(t, err)
	require.NotNil(t, recipe)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Milk "+f.suffix, recipe.Ingredients[0].ItemName)
	assert.True(t, dec("5").Equal(recipe.Ingredients[0].Available))

	byID, err := f.repos.Recipes.ListByProductIDs(ctx, []string{f.latte, uuid.NewString(), "no-uuid"})
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	list, err := f.repos.Products.List(ctx, repository.ProductFilter{OnlyAvailable: true})
	require.NoError(t, err)
	found := false
	for _, p := range list {
		found = found || p.ID == f.latte
	}
	assert.True(t, found)
}

func TestPostgres_LecturaDeIDInexistente(t *testing.T) {
	f := newPgFixture(t, "1")
	ctx := context.Background()

	item, err := f.repos.Items.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, item)
	p, err := f.repos.Products.GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPostgres_OrdenesRecientesYEstado(t *testing.T) {
	f := newPgFixture(t, "1")
	ctx := context.Background()

	order := &entity.Order{
		OrderNumber:   "ORD-" + f.suffix[:6],
		Channel:       entity.OrderChannelCashier,
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
		Status:        entity.OrderStatusPending,
		TotalCents:    15000,
		OrderedAt:     time.Now().Add(time.Hour),
		Items: []entity.OrderItem{{
			ProductID: f.latte, ProductName: f.product.Name, Quantity: 1, UnitPriceCents: 15000, TotalCents: 15000,
		}},
	}
	require.NoError(t, f.tx.RunSale(ctx, func(repos appinventory.TxRepos) error {
		return repos.Orders.Create(ctx, order)
	}))

	recent, err := f.repos.Orders.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, order.ID, recent[0].ID, "la orden más reciente va primero")
	require.Len(t, recent[0].Items, 1)

	require.NoError(t, f.repos.Orders.UpdateStatus(ctx, order.ID, entity.OrderStatusReady))
	got, err := f.repos.Orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.OrderStatusReady, got.Status)

	assert.ErrorIs(t, f.repos.Orders.UpdateStatus(ctx, uuid.NewString(), entity.OrderStatusReady), domain.ErrNotFound)
	assert.ErrorIs(t, f.repos.Orders.UpdateStatus(ctx, "no-uuid", entity.OrderStatusReady), domain.ErrNotFound)
	missing, err := f.repos.Orders.GetByID(ctx, "no-uuid")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestPostgres_MilkLatte(t *testing.T) {
	f := newPgFixture(t, "5")
	ctx := context.Background()

	res, err := f.coord.ProcessSale(ctx, f.latte, 16, sales.SaleContext{Channel: entity.OrderChannelAdmin})
	require.NoError(t, err)
	require.True(t, res.Committed())

	item, err := f.repos.Items.GetByID(ctx, f.milk)
	require.NoError(t, err)
	assert.True(t, dec("0.2").Equal(item.Quantity), "quedan 0.2 L")

	movs, err := f.repos.Movements.ListByItem(ctx, f.milk, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, dec("-4.8").Equal(movs[0].Change))
	assert.Contains(t, movs[0].Reason, "Latte")

	res, err = f.coord.ProcessSale(ctx, f.latte, 1, sales.SaleContext{Channel: entity.OrderChannelAdmin})
	require.NoError(t, err)
	assert.False(t, res.Committed(), "la venta 17 se rechaza")

	report, err := f.ledger.VerifyConsistency(ctx, f.milk)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
}

func TestPostgres_ConcurrenciaUltimaUnidad(t *testing.T) {
	f := newPgFixture(t, "0.3")
	ctx := context.Background()

	const buyers = 8
	var wg sync.WaitGroup
	results := make(chan bool, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.coord.ProcessSale(ctx, f.latte, 1, sales.SaleContext{Channel: entity.OrderChannelKiosk})
			results <- err == nil && res.Committed()
		}()
	}
	wg.Wait()
	close(results)

	committed := 0
	for ok := range results {
		if ok {
			committed++
		}
	}
	assert.Equal(t, 1, committed, "solo una venta toma la última unidad")

	item, err := f.repos.Items.GetByID(ctx, f.milk)
	require.NoError(t, err)
	assert.True(t, item.Quantity.IsZero())
}

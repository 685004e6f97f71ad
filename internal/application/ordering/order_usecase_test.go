package ordering_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	appinventory "github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/ordering"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/cafe-pos-api/pkg/money"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type captureLog struct{ entries []activity.Entry }

func (c *captureLog) Log(_ context.Context, e activity.Entry) error {
	c.entries = append(c.entries, e)
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*ordering.OrderUseCase, *memory.Store, *captureLog) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	ledger := appinventory.NewStockLedger(store, repos.Items, repos.Movements)
	coord := sales.NewCoordinator(store, ledger, nil, nil)
	logs := &captureLog{}
	uc := ordering.NewOrderUseCase(store, coord, repos.Orders, logs, nil, money.NewFormatter("₱", "en"))
	uc.SetClock(func() time.Time { return time.UnixMilli(1_760_000_123_456) })

	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{ID: "milk", Name: "Milk", Unit: "L", Quantity: dec("1"), InitialQuantity: dec("1")}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "latte", Name: "Latte", PriceCents: 15000, Status: entity.ProductStatusAvailable}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "cookie", Name: "Cookie", PriceCents: 4550, Status: entity.ProductStatusAvailable}))
	require.NoError(t, repos.Recipes.Replace(ctx, &entity.Recipe{
		ID: "r-latte", ProductID: "latte",
		Ingredients: []entity.RecipeIngredient{{ID: "l1", RecipeID: "r-latte", InventoryItemID: "milk", QuantityNeeded: dec("0.3")}},
	}))
	return uc, store, logs
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_EfectivoPagadaYTotales(t *testing.T) {
	uc, store, logs := setup(t)
	ctx := context.Background()

	out, err := uc.CreateOrder(ctx, entity.OrderChannelKiosk, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "latte", Quantity: 2, SpecialNotes: "oat milk"},
			{ProductID: "cookie", Quantity: 1},
		},
		PaymentMethod: "cash",
	}, activity.Actor{IP: "10.0.0.9"})
	require.NoError(t, err)

	assert.Equal(t, "ORD-123456", out.OrderNumber, "ORD- + últimos 6 dígitos del timestamp")
	assert.Equal(t, entity.PaymentStatusPaid, out.PaymentStatus, "efectivo queda pagado")
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.Equal(t, int64(34550), out.TotalCents)
	assert.Equal(t, "₱345.50", out.Total)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "oat milk", out.Items[0].SpecialNotes)
	require.Len(t, out.Deductions, 1)
	assert.True(t, dec("0.4").Equal(out.Deductions[0].Remaining))

	movs, err := store.Repos().Movements.ListByItem(ctx, "milk", 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "Order #ORD-123456: 2x Latte", movs[0].Reason)
	assert.Equal(t, out.ID, movs[0].ReferenceID)

	found, err := uc.GetByNumber(ctx, "ORD-123456")
	require.NoError(t, err)
	assert.Equal(t, out.ID, found.ID)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, activity.ActionCreate, logs.entries[0].Action)
	assert.Equal(t, activity.EntityOrder, logs.entries[0].EntityType)
	assert.Equal(t, "10.0.0.9", logs.entries[0].Actor.IP)
}

func TestCreateOrder_GCashPendiente(t *testing.T) {
	uc, _, _ := setup(t)
	out, err := uc.CreateOrder(context.Background(), entity.OrderChannelKiosk, dto.CreateOrderRequest{
		Items:         []dto.OrderItemRequest{{ProductID: "cookie", Quantity: 1}},
		PaymentMethod: "gcash",
	}, activity.Actor{})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, out.PaymentStatus)
}

func TestCreateOrder_NumeroOcupadoUsaElSiguiente(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	in := dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: "cookie", Quantity: 1}}}

	first, err := uc.CreateOrder(ctx, entity.OrderChannelCashier, in, activity.Actor{})
	require.NoError(t, err)
	second, err := uc.CreateOrder(ctx, entity.OrderChannelCashier, in, activity.Actor{})
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
	assert.Equal(t, "ORD-123457", second.OrderNumber)
}

func TestCreateOrder_StockInsuficienteNoGuardaNada(t *testing.T) {
	uc, store, logs := setup(t)
	ctx := context.Background()

	_, err := uc.CreateOrder(ctx, entity.OrderChannelCashier, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "latte", Quantity: 4}},
	}, activity.Actor{})
	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Milk", stockErr.Primary().Ingredient)
	assert.True(t, dec("1.2").Equal(stockErr.Primary().Needed))

	_, err = uc.GetByNumber(ctx, "ORD-123456")
	assert.ErrorIs(t, err, domain.ErrNotFound, "la orden no debe persistir")
	item, err := store.Repos().Items.GetByID(ctx, "milk")
	require.NoError(t, err)
	assert.True(t, dec("1").Equal(item.Quantity))
	assert.Empty(t, logs.entries)
}

func TestCreateOrder_Validaciones(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.CreateOrder(ctx, entity.OrderChannelKiosk, dto.CreateOrderRequest{}, activity.Actor{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateOrder(ctx, entity.OrderChannelKiosk, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "latte", Quantity: 0}},
	}, activity.Actor{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateOrder(ctx, entity.OrderChannelKiosk, dto.CreateOrderRequest{
		Items:         []dto.OrderItemRequest{{ProductID: "latte", Quantity: 1}},
		PaymentMethod: "bitcoin",
	}, activity.Actor{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateOrder(ctx, entity.OrderChannelKiosk, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "no-existe", Quantity: 1}},
	}, activity.Actor{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_CantidadDesbordaTotal(t *testing.T) {
	uc, store, logs := setup(t)
	ctx := context.Background()

	_, err := uc.CreateOrder(ctx, entity.OrderChannelKiosk, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "cookie", Quantity: 3_000_000_000_000_000}},
	}, activity.Actor{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "4550 x 3e18 no cabe en int64")

	_, err = uc.CreateOrder(ctx, entity.OrderChannelKiosk, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "cookie", Quantity: ordering.MaxLineQuantity + 1}},
	}, activity.Actor{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tope de unidades por línea")

	orders, err := store.Repos().Orders.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, orders, "no se guarda ninguna orden")
	assert.Empty(t, logs.entries)

	out, err := uc.CreateOrder(ctx, entity.OrderChannelKiosk, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "cookie", Quantity: ordering.MaxLineQuantity}},
	}, activity.Actor{})
	require.NoError(t, err, "el tope mismo se acepta")
	assert.Equal(t, int64(4550*ordering.MaxLineQuantity), out.TotalCents)
}

func TestCreateOrder_NumeroTomadoAlGuardarReintenta(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()

	// otra caja inserta el mismo número justo antes que nosotros
	collisions := 0
	store.SetFault(func(op string) error {
		if op == "order.create" && collisions == 0 {
			collisions++
			return domain.ErrDuplicate
		}
		return nil
	})

	out, err := uc.CreateOrder(ctx, entity.OrderChannelCashier, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "latte", Quantity: 1}},
	}, activity.Actor{})
	require.NoError(t, err, "la colisión se resuelve con el número siguiente")
	assert.Equal(t, 1, collisions)
	assert.Equal(t, "ORD-123457", out.OrderNumber)

	item, err := store.Repos().Items.GetByID(ctx, "milk")
	require.NoError(t, err)
	assert.True(t, dec("0.7").Equal(item.Quantity), "el intento fallido no descuenta")
	movs, err := store.Repos().Movements.ListByItem(ctx, "milk", 0, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestCreateOrder_ColisionPersistenteFalla(t *testing.T) {
	uc, store, _ := setup(t)
	store.SetFault(func(op string) error {
		if op == "order.create" {
			return domain.ErrDuplicate
		}
		return nil
	})

	_, err := uc.CreateOrder(context.Background(), entity.OrderChannelCashier, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "cookie", Quantity: 1}},
	}, activity.Actor{})
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consola de caja
// ──────────────────────────────────────────────────────────────────────────────

func TestListRecent_MasRecientePrimero(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	in := dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: "cookie", Quantity: 1}}}

	base := time.UnixMilli(1_760_000_123_456)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Second)
		uc.SetClock(func() time.Time { return at })
		_, err := uc.CreateOrder(ctx, entity.OrderChannelCashier, in, activity.Actor{})
		require.NoError(t, err)
	}

	list, err := uc.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "ORD-125456", list[0].OrderNumber)
	assert.Equal(t, "ORD-123456", list[2].OrderNumber)
	assert.Len(t, list[0].Items, 1)

	list, err = uc.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUpdateStatus_RegistraAnteriorYNuevo(t *testing.T) {
	uc, store, logs := setup(t)
	ctx := context.Background()
	order, err := uc.CreateOrder(ctx, entity.OrderChannelCashier, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "latte", Quantity: 1}},
	}, activity.Actor{})
	require.NoError(t, err)

	out, err := uc.UpdateStatus(ctx, dto.UpdateOrderStatusRequest{OrderID: order.ID, Status: " Preparing "},
		activity.Actor{UserName: "Ana Barista", Role: entity.RoleCashier})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPreparing, out.Status, "el estado se normaliza")

	require.Len(t, logs.entries, 2)
	e := logs.entries[1]
	assert.Equal(t, activity.ActionUpdate, e.Action)
	assert.Equal(t, activity.EntityOrder, e.EntityType)
	assert.Equal(t, order.ID, e.EntityID)
	assert.Equal(t, entity.OrderStatusPending, e.Metadata["previous_status"])
	assert.Equal(t, entity.OrderStatusPreparing, e.Metadata["new_status"])
	assert.Equal(t, "Ana Barista", e.Actor.UserName)

	_, err = uc.UpdateStatus(ctx, dto.UpdateOrderStatusRequest{OrderID: order.ID, Status: entity.OrderStatusCancelled}, activity.Actor{})
	require.NoError(t, err)
	item, err := store.Repos().Items.GetByID(ctx, "milk")
	require.NoError(t, err)
	assert.True(t, dec("0.7").Equal(item.Quantity), "cancelar no repone inventario")
}

func TestUpdateStatus_Validaciones(t *testing.T) {
	uc, _, logs := setup(t)
	ctx := context.Background()
	order, err := uc.CreateOrder(ctx, entity.OrderChannelKiosk, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "cookie", Quantity: 1}},
	}, activity.Actor{})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, dto.UpdateOrderStatusRequest{OrderID: order.ID, Status: "refunded"}, activity.Actor{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateStatus(ctx, dto.UpdateOrderStatusRequest{Status: "ready"}, activity.Actor{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateStatus(ctx, dto.UpdateOrderStatusRequest{OrderID: "no-existe", Status: "ready"}, activity.Actor{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	found, err := uc.GetByNumber(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, found.Status)
	assert.Len(t, logs.entries, 1, "solo la creación queda registrada")
}

func TestOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-000042", ordering.OrderNumber(time.UnixMilli(3_000_000_042)))
}

// Package ordering crea órdenes de kiosco y caja: arma la orden, descuenta inventario
// por receta y guarda cabecera y líneas en una sola transacción.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	appinventory "github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/pkg/money"
)

const (
	// maxNumberAttempts intentos para encontrar un número de orden libre.
	maxNumberAttempts = 10
	// MaxLineQuantity unidades máximas por línea de orden.
	MaxLineQuantity = 1000
	// DefaultRecentLimit órdenes que devuelve la consola si no se indica límite.
	DefaultRecentLimit = 50
	// MaxRecentLimit tope de órdenes por consulta de la consola.
	MaxRecentLimit = 200
)

// errTotalOverflow total de la orden fuera de rango int64.
var errTotalOverflow = errors.New("total de la orden fuera de rango")

// OrderUseCase casos de uso de órdenes.
type OrderUseCase struct {
	txRunner    appinventory.TxRunner
	coordinator *sales.Coordinator
	orderRepo   repository.OrderRepository
	activity    activity.Logger
	metrics     sales.Metrics
	formatter   *money.Formatter
	now         func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner appinventory.TxRunner,
	coordinator *sales.Coordinator,
	orderRepo repository.OrderRepository,
	activityLog activity.Logger,
	metrics sales.Metrics,
	formatter *money.Formatter,
) *OrderUseCase {
	if activityLog == nil {
		activityLog = activity.Nop{}
	}
	return &OrderUseCase{
		txRunner:    txRunner,
		coordinator: coordinator,
		orderRepo:   orderRepo,
		activity:    activityLog,
		metrics:     metrics,
		formatter:   formatter,
		now:         time.Now,
	}
}

// SetClock reemplaza time.Now (tests).
func (uc *OrderUseCase) SetClock(now func() time.Time) { uc.now = now }

// OrderNumber genera "ORD-" + últimos 6 dígitos del timestamp en milisegundos.
func OrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%06d", t.UnixMilli()%1_000_000)
}

// CreateOrder crea la orden y descuenta el inventario de todas sus líneas de forma atómica.
// Si algún insumo no alcanza se retorna *domain.InsufficientStockError y nada se guarda.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, channel string, in dto.CreateOrderRequest, actor activity.Actor) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	method := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if method == "" {
		method = entity.PaymentMethodCash
	}
	switch method {
	case entity.PaymentMethodCash, entity.PaymentMethodGCash, entity.PaymentMethodCard:
	default:
		return nil, fmt.Errorf("método de pago %q: %w", in.PaymentMethod, domain.ErrInvalidInput)
	}
	lines := make([]sales.Line, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if it.Quantity > MaxLineQuantity {
			return nil, fmt.Errorf("cantidad %d supera el máximo %d: %w", it.Quantity, MaxLineQuantity, domain.ErrInvalidInput)
		}
		lines = append(lines, sales.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	start := uc.now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		Channel:       channel,
		PaymentMethod: method,
		PaymentStatus: entity.PaymentStatusPending,
		Status:        entity.OrderStatusPending,
		OrderedAt:     start,
	}
	if method == entity.PaymentMethodCash {
		order.PaymentStatus = entity.PaymentStatusPaid
	}

	var (
		result *sales.SaleResult
		err    error
	)
	// Otra caja puede tomar el mismo número entre la lectura y el insert:
	// se reintenta la transacción completa desde el número siguiente.
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		base := start.Add(time.Duration(attempt) * time.Millisecond)
		result = nil
		err = uc.txRunner.RunSale(ctx, func(repos appinventory.TxRepos) error {
			var txErr error
			result, txErr = uc.saleTx(ctx, repos, order, base, lines, in.Items, actor)
			return txErr
		})
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	elapsed := time.Since(start)
	if errors.Is(err, sales.ErrRejected) {
		uc.observe(channel, string(sales.StatusRejected), elapsed)
		return nil, result.Rejection.Err()
	}
	if errors.Is(err, errTotalOverflow) {
		uc.observe(channel, string(sales.StatusRejected), elapsed)
		return nil, fmt.Errorf("%w: %w", errTotalOverflow, domain.ErrInvalidInput)
	}
	if err != nil {
		uc.observe(channel, sales.StatusFailed, elapsed)
		if errors.Is(err, domain.ErrTransactionFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
	}
	uc.observe(channel, string(sales.StatusCommitted), elapsed)

	_ = uc.activity.Log(ctx, activity.Entry{
		Action:      activity.ActionCreate,
		EntityType:  activity.EntityOrder,
		EntityID:    order.ID,
		EntityName:  order.OrderNumber,
		Description: fmt.Sprintf("Order #%s: %s (%s)", order.OrderNumber, sales.SummarizeLines(result.Lines), uc.formatter.Cents(order.TotalCents)),
		Metadata: map[string]any{
			"channel":              channel,
			"payment_method":       order.PaymentMethod,
			"total_cents":          order.TotalCents,
			"ingredients_deducted": sales.DeductionsMetadata(result.Deductions),
		},
		Actor: actor,
	})

	out := uc.toOrderResponse(order)
	out.Deductions = ToDeductionResponses(result.Deductions)
	return &out, nil
}

// saleTx arma la orden dentro de la transacción: número libre, descuento de
// inventario, líneas con snapshot de precio y guardado.
func (uc *OrderUseCase) saleTx(
	ctx context.Context,
	repos appinventory.TxRepos,
	order *entity.Order,
	base time.Time,
	lines []sales.Line,
	items []dto.OrderItemRequest,
	actor activity.Actor,
) (*sales.SaleResult, error) {
	// 1) Número de orden libre
	number, err := uc.freeNumber(ctx, repos.Orders, base)
	if err != nil {
		return nil, err
	}
	order.OrderNumber = number

	// 2) Validar y descontar inventario de todas las líneas (demanda combinada)
	result, err := uc.coordinator.DeductInTx(ctx, repos, lines, sales.SaleContext{
		Channel:     order.Channel,
		ReferenceID: order.ID,
		OrderNumber: number,
		Actor:       actor,
	})
	if err != nil {
		return result, err
	}
	if !result.Committed() {
		return result, sales.ErrRejected
	}

	// 3) Líneas y totales con snapshot de nombre y precio
	order.Items = make([]entity.OrderItem, 0, len(result.Lines))
	var total int64
	for i, l := range result.Lines {
		lineTotal, ok := mulCents(l.Product.PriceCents, int64(l.Quantity))
		if !ok {
			return result, errTotalOverflow
		}
		if total, ok = addCents(total, lineTotal); !ok {
			return result, errTotalOverflow
		}
		order.Items = append(order.Items, entity.OrderItem{
			ID:             uuid.New().String(),
			OrderID:        order.ID,
			ProductID:      l.Product.ID,
			ProductName:    l.Product.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: l.Product.PriceCents,
			TotalCents:     lineTotal,
			SpecialNotes:   items[i].SpecialNotes,
		})
	}
	order.TotalCents = total

	// 4) Guardar cabecera y líneas
	return result, repos.Orders.Create(ctx, order)
}

// mulCents multiplica centavos no negativos; ok=false si desborda int64.
func mulCents(price, qty int64) (int64, bool) {
	if price < 0 || qty < 0 {
		return 0, false
	}
	if price != 0 && qty > math.MaxInt64/price {
		return 0, false
	}
	return price * qty, true
}

// addCents suma centavos no negativos; ok=false si desborda int64.
func addCents(a, b int64) (int64, bool) {
	if b > math.MaxInt64-a {
		return 0, false
	}
	return a + b, true
}

// GetByNumber busca una orden por su número.
func (uc *OrderUseCase) GetByNumber(ctx context.Context, number string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	out := uc.toOrderResponse(order)
	return &out, nil
}

// ListRecent devuelve las últimas órdenes para la consola de caja.
func (uc *OrderUseCase) ListRecent(ctx context.Context, limit int) ([]dto.OrderResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	orders, err := uc.orderRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, uc.toOrderResponse(o))
	}
	return out, nil
}

// UpdateStatus cambia el estado de preparación de una orden. Cancelar no
// devuelve insumos al inventario: la reposición se hace con un ajuste manual.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, in dto.UpdateOrderStatusRequest, actor activity.Actor) (*dto.OrderResponse, error) {
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if in.OrderID == "" || !entity.IsOrderStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", in.Status, domain.ErrInvalidInput)
	}
	order, err := uc.orderRepo.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	previous := order.Status
	if err := uc.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status

	_ = uc.activity.Log(ctx, activity.Entry{
		Action:      activity.ActionUpdate,
		EntityType:  activity.EntityOrder,
		EntityID:    order.ID,
		EntityName:  order.OrderNumber,
		Description: fmt.Sprintf("Order #%s status: %s -> %s", order.OrderNumber, previous, status),
		Metadata: map[string]any{
			"previous_status": previous,
			"new_status":      status,
		},
		Actor: actor,
	})

	out := uc.toOrderResponse(order)
	return &out, nil
}

func (uc *OrderUseCase) freeNumber(ctx context.Context, orders repository.OrderRepository, t time.Time) (string, error) {
	for i := 0; i < maxNumberAttempts; i++ {
		number := OrderNumber(t.Add(time.Duration(i) * time.Millisecond))
		existing, err := orders.GetByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return number, nil
		}
	}
	return "", fmt.Errorf("número de orden: %w", domain.ErrConflict)
}

func (uc *OrderUseCase) observe(channel, status string, elapsed time.Duration) {
	if uc.metrics != nil {
		uc.metrics.SaleObserved(channel, status, elapsed)
	}
}

func (uc *OrderUseCase) toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			TotalCents:     it.TotalCents,
			SpecialNotes:   it.SpecialNotes,
		})
	}
	return dto.OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Channel:       o.Channel,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		Status:        o.Status,
		TotalCents:    o.TotalCents,
		Total:         uc.formatter.Cents(o.TotalCents),
		Items:         items,
		OrderedAt:     o.OrderedAt,
	}
}

// ToDeductionResponses mapea los descuentos al DTO.
func ToDeductionResponses(ds []sales.Deduction) []dto.DeductionResponse {
	out := make([]dto.DeductionResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, dto.DeductionResponse{
			InventoryItemID: d.InventoryItemID,
			Ingredient:      d.Ingredient,
			Unit:            d.Unit,
			Quantity:        d.Quantity,
			Remaining:       d.Remaining,
		})
	}
	return out
}

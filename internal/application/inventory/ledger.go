package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// DefaultLowStockLimit cantidad de ítems del tablero de bajo stock.
const DefaultLowStockLimit = 5

// StockLedger es el único punto que modifica InventoryItem.Quantity.
// Cada cambio agrega un StockMovement en la misma transacción que actualiza la proyección,
// de modo que quantity = initial_quantity + Σ change por ítem.
type StockLedger struct {
	txRunner TxRunner
	itemRepo repository.InventoryItemRepository
	movRepo  repository.StockMovementRepository
	activity activity.Logger
	metrics  Metrics
	now      func() time.Time
}

// Option configura el StockLedger.
type Option func(*StockLedger)

// WithActivityLogger define el destino de auditoría de los ajustes manuales.
func WithActivityLogger(l activity.Logger) Option {
	return func(s *StockLedger) { s.activity = l }
}

// WithMetrics define el registrador de métricas.
func WithMetrics(m Metrics) Option {
	return func(s *StockLedger) { s.metrics = m }
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *StockLedger) { s.now = now }
}

// NewStockLedger construye el libro. itemRepo y movRepo son las versiones sin transacción (lecturas).
func NewStockLedger(
	txRunner TxRunner,
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	opts ...Option,
) *StockLedger {
	s := &StockLedger{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
		activity: activity.Nop{},
		metrics:  nopMetrics{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ApplyMovement aplica change al ítem y registra el movimiento en una transacción propia.
// No valida no-negatividad: eso corresponde al coordinador de ventas.
func (s *StockLedger) ApplyMovement(ctx context.Context, itemID string, change decimal.Decimal, reason, referenceID string) (*entity.StockMovement, error) {
	var mov *entity.StockMovement
	err := s.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		mov, _, err = s.ApplyInTx(ctx, itemRepo, movRepo, itemID, change, reason, referenceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyInTx aplica el movimiento con los repos del caller (misma transacción).
// Bloquea la fila del ítem (SELECT FOR UPDATE); si el caller ya la bloqueó el bloqueo es reentrante.
// Devuelve el movimiento y el ítem con la cantidad nueva.
func (s *StockLedger) ApplyInTx(
	ctx context.Context,
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	itemID string,
	change decimal.Decimal,
	reason, referenceID string,
) (*entity.StockMovement, *entity.InventoryItem, error) {
	item, err := itemRepo.GetForUpdate(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, fmt.Errorf("insumo %s: %w", itemID, domain.ErrNotFound)
	}
	now := s.now()
	item.Quantity = item.Quantity.Add(change)
	item.UpdatedAt = now
	if err := itemRepo.UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
		return nil, nil, err
	}
	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		InventoryItemID: item.ID,
		Change:          change,
		Reason:          reason,
		ReferenceID:     referenceID,
		CreatedAt:       now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, nil, err
	}
	return mov, item, nil
}

// CreateItem crea un insumo. La existencia inicial queda como initial_quantity (base del libro).
func (s *StockLedger) CreateItem(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if name == "" || unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.LowStockThreshold != nil && in.LowStockThreshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := s.now()
	item := &entity.InventoryItem{
		ID:                uuid.New().String(),
		Name:              name,
		Unit:              unit,
		Quantity:          in.Quantity,
		InitialQuantity:   in.Quantity,
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := ToInventoryItemResponse(item)
	return &out, nil
}

// GetItem obtiene un insumo por ID.
func (s *StockLedger) GetItem(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	out := ToInventoryItemResponse(item)
	return &out, nil
}

// ListItems lista todos los insumos por nombre.
func (s *StockLedger) ListItems(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toInventoryItemResponses(items), nil
}

// LowStock devuelve los insumos en o por debajo de su umbral, del más escaso al menos escaso.
func (s *StockLedger) LowStock(ctx context.Context, limit int) ([]dto.InventoryItemResponse, error) {
	if limit <= 0 {
		limit = DefaultLowStockLimit
	}
	items, err := s.itemRepo.ListLowStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toInventoryItemResponses(items), nil
}

// ListMovements devuelve el historial del insumo, más reciente primero.
func (s *StockLedger) ListMovements(ctx context.Context, itemID string, limit, offset int) (*dto.StockMovementListResponse, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	list, err := s.movRepo.ListByItem(ctx, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToStockMovementResponse(m))
	}
	return &dto.StockMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// VerifyConsistency compara la proyección con initial_quantity + Σ movimientos.
// La diferencia se reporta; nunca se corrige automáticamente.
func (s *StockLedger) VerifyConsistency(ctx context.Context, itemID string) (*dto.LedgerConsistencyResponse, error) {
	var out *dto.LedgerConsistencyResponse
	err := s.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		sum, err := movRepo.SumByItem(ctx, itemID)
		if err != nil {
			return err
		}
		expected := item.InitialQuantity.Add(sum)
		drift := item.Quantity.Sub(expected)
		out = &dto.LedgerConsistencyResponse{
			InventoryItemID: item.ID,
			Quantity:        item.Quantity,
			InitialQuantity: item.InitialQuantity,
			MovementsTotal:  sum,
			Expected:        expected,
			Drift:           drift,
			Consistent:      drift.IsZero(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToInventoryItemResponse mapea la entidad al DTO.
func ToInventoryItemResponse(item *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:                item.ID,
		Name:              item.Name,
		Unit:              item.Unit,
		Quantity:          item.Quantity,
		LowStockThreshold: item.LowStockThreshold,
		IsLowStock:        item.IsLowStock(),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

// ToStockMovementResponse mapea un movimiento al DTO.
func ToStockMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:              m.ID,
		InventoryItemID: m.InventoryItemID,
		Change:          m.Change,
		Reason:          m.Reason,
		ReferenceID:     m.ReferenceID,
		CreatedAt:       m.CreatedAt,
	}
}

func toInventoryItemResponses(items []*entity.InventoryItem) []dto.InventoryItemResponse {
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToInventoryItemResponse(it))
	}
	return out
}

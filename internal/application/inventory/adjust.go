package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// AdjustStock registra un ajuste manual (compra, merma, robo, corrección).
// El cambio puede dejar la existencia en negativo; se acepta para corregir conteos.
func (s *StockLedger) AdjustStock(ctx context.Context, in dto.AdjustStockRequest, actor activity.Actor) (*dto.AdjustStockResponse, error) {
	if strings.TrimSpace(in.InventoryItemID) == "" || in.Change.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = entity.ReasonManualAdjustment
	}
	if !entity.IsAdjustmentReason(reason) {
		return nil, fmt.Errorf("motivo %q: %w", reason, domain.ErrInvalidInput)
	}

	var (
		mov  *entity.StockMovement
		item *entity.InventoryItem
	)
	err := s.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		mov, item, err = s.ApplyInTx(ctx, itemRepo, movRepo, in.InventoryItemID, in.Change, reason, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	s.metrics.StockAdjusted(reason)

	previous := item.Quantity.Sub(in.Change)
	metadata := map[string]any{
		"previous_quantity": previous.String(),
		"new_quantity":      item.Quantity.String(),
		"change":            in.Change.String(),
		"reason":            reason,
		"unit":              item.Unit,
	}
	if in.Notes != "" {
		metadata["notes"] = in.Notes
	}
	_ = s.activity.Log(ctx, activity.Entry{
		Action:      activity.ActionAdjustStock,
		EntityType:  activity.EntityInventory,
		EntityID:    item.ID,
		EntityName:  item.Name,
		Description: fmt.Sprintf("Adjusted %s: %s → %s %s (%s)", item.Name, previous.String(), item.Quantity.String(), item.Unit, reason),
		Metadata:    metadata,
		Actor:       actor,
	})

	return &dto.AdjustStockResponse{
		Item:             ToInventoryItemResponse(item),
		Movement:         ToStockMovementResponse(mov),
		PreviousQuantity: previous,
		NewQuantity:      item.Quantity,
	}, nil
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(insufficientStockResponse(stockErr))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidRecipeLine):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_RECIPE_LINE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrTransactionFailed):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "SALE_NOT_COMPLETED",
			Message: "The sale could not be completed and no stock was deducted. Please try again.",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func insufficientStockResponse(e *domain.InsufficientStockError) dto.InsufficientStockResponse {
	p := e.Primary()
	out := dto.InsufficientStockResponse{
		Code:       "INSUFFICIENT_STOCK",
		Message:    "Insufficient " + p.Ingredient + ". Need " + p.Needed.String() + " " + p.Unit + ", have " + p.Available.String() + " " + p.Unit,
		Ingredient: p.Ingredient,
		Unit:       p.Unit,
		Needed:     p.Needed,
		Available:  p.Available,
		Shortages:  make([]dto.ShortageResponse, 0, len(e.Shortages)),
	}
	for _, s := range e.Shortages {
		out.Shortages = append(out.Shortages, dto.ShortageResponse{
			InventoryItemID: s.InventoryItemID,
			Ingredient:      s.Ingredient,
			Unit:            s.Unit,
			Needed:          s.Needed,
			Available:       s.Available,
		})
	}
	return out
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/pkg/logger"
)

// responder traduce errores de dominio a respuestas HTTP.
type responder struct {
	log *logger.Logger
}

func (r responder) fail(c *fiber.Ctx, err error) error {
	var (
		verr *domain.ValidationError
		ins  *domain.InsufficientStockError
		nf   *domain.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		details := make(map[string]interface{}, len(verr.Fields))
		for k, v := range verr.Fields {
			details[k] = v
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Details: details})
	case errors.As(err, &ins):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: ins.Error(),
			Details: map[string]interface{}{"stock_item_id": ins.StockItemID, "available": ins.Available, "required": ins.Required},
		})
	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: nf.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrLockNotObtained):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_BUSY", Message: "el ítem está siendo modificado, reintente"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	r.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

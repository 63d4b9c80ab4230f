package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/application/usecase"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
)

// LedgerHandler cuentas (/accounts), saldos por cobrar (/receivables) o gastos (/expenses):
// una instancia por tipo.
type LedgerHandler struct {
	responder
	uc   *usecase.LedgerUseCase
	kind entity.LedgerKind
}

// NewLedgerHandler construye el handler para kind.
func NewLedgerHandler(uc *usecase.LedgerUseCase, kind entity.LedgerKind, r responder) *LedgerHandler {
	return &LedgerHandler{responder: r, uc: uc, kind: kind}
}

// Create godoc
// @Summary      Crear asiento
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LedgerEntryRequest  true  "Asiento"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Router       /api/accounts [post]
// @Router       /api/receivables [post]
// @Router       /api/expenses [post]
func (h *LedgerHandler) Create(c *fiber.Ctx) error {
	var in dto.LedgerEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), h.kind, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *LedgerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), h.kind, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *LedgerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), h.kind)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *LedgerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLedgerEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), h.kind, c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *LedgerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), h.kind, c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/application/usecase"
)

// StockHandler inventario de teléfonos.
type StockHandler struct {
	responder
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase, r responder) *StockHandler {
	return &StockHandler{responder: r, uc: uc}
}

// Create godoc
// @Summary      Ingresar equipos al inventario
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "Ítem"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem de stock
// @Tags         stock
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar inventario
// @Tags         stock
// @Produce      json
// @Param        vendor    query  string  false  "Proveedor"
// @Param        in_stock  query  bool    false  "Solo con unidades"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var q dto.StockListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// VendorTotals godoc
// @Summary      Unidades y valor por proveedor
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.VendorTotalResponse
// @Router       /api/stock/vendors [get]
func (h *StockHandler) VendorTotals(c *fiber.Ctx) error {
	out, err := h.uc.VendorTotals(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir ítem de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateStockRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.StockItemResponse
// @Router       /api/stock/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ítem de stock
// @Tags         stock
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/application/sales"
)

// SaleHandler ventas, comprobantes y exportación.
type SaleHandler struct {
	responder
	wf   *sales.Workflow
	docs *sales.DocumentsUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(wf *sales.Workflow, docs *sales.DocumentsUseCase, r responder) *SaleHandler {
	return &SaleHandler{responder: r, wf: wf, docs: docs}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Con stock_item_id descuenta unidades; si el ajuste de stock falla la venta se guarda igual y la respuesta trae warning.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.wf.CreateSale(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res.Response())
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.wf.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.NewSaleResponse(sale))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Param        payment_status  query  string  false  "paid | pending | partial | all"
// @Param        vendor          query  string  false  "Proveedor o all"
// @Param        from            query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to              query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.SaleListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	list, totals, err := h.wf.ListSales(c.UserContext(), q)
	if err != nil {
		return h.fail(c, err)
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.NewSaleResponse(s))
	}
	return c.JSON(dto.SaleListResponse{Items: items, Totals: dto.NewSalesTotals(totals)})
}

// Update godoc
// @Summary      Editar venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateSaleRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.SaleResultResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.wf.UpdateSale(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res.Response())
}

// Delete godoc
// @Summary      Eliminar venta y devolver unidades al stock
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.SaleResultResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	res, err := h.wf.DeleteSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res.Response())
}

// Receipt godoc
// @Summary      Comprobante PDF de la venta
// @Tags         sales
// @Produce      application/pdf
// @Param        id   path  string  true  "ID"
// @Success      200  {file}  binary
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.docs.Receipt(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="venta-%s.pdf"`, id))
	return c.Send(pdf)
}

// Export godoc
// @Summary      Exportar ventas a Excel
// @Tags         sales
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/sales/export [get]
func (h *SaleHandler) Export(c *fiber.Ctx) error {
	var q dto.SaleListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.docs.Export(c.UserContext(), q)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ventas-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(out)
}

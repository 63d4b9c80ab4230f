package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/phonestock-api/internal/application/analytics"
)

// DashboardHandler resumen del negocio.
type DashboardHandler struct {
	responder
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, r responder) *DashboardHandler {
	return &DashboardHandler{responder: r, uc: uc}
}

// GetSummary godoc
// @Summary      Resumen: inventario a costo, caja y ventas
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

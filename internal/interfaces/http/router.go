package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/phonestock-api/internal/application/analytics"
	"github.com/jhoicas/phonestock-api/internal/application/events"
	"github.com/jhoicas/phonestock-api/internal/application/sales"
	"github.com/jhoicas/phonestock-api/internal/application/usecase"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC     *usecase.StockUseCase
	Sales       *sales.Workflow
	Documents   *sales.DocumentsUseCase
	LedgerUC    *usecase.LedgerUseCase
	DashboardUC *analytics.DashboardUseCase
	Bus         *events.Bus
	Log         *logger.Logger
}

// ledgerRoutes ruta de cada tipo de asiento.
var ledgerRoutes = map[string]entity.LedgerKind{
	"/accounts":    entity.LedgerAccount,
	"/receivables": entity.LedgerReceivable,
	"/expenses":    entity.LedgerExpense,
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	r := responder{log: deps.Log.Named("http")}
	api := app.Group("/api")

	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, r)
	stock.Get("/", stockHandler.List)
	stock.Post("/", stockHandler.Create)
	stock.Get("/vendors", stockHandler.VendorTotals)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Put("/:id", stockHandler.Update)
	stock.Delete("/:id", stockHandler.Delete)

	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Sales, deps.Documents, r)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/export", saleHandler.Export)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	for path, kind := range ledgerRoutes {
		g := api.Group(path)
		h := NewLedgerHandler(deps.LedgerUC, kind, r)
		g.Get("/", h.List)
		g.Post("/", h.Create)
		g.Get("/:id", h.GetByID)
		g.Put("/:id", h.Update)
		g.Delete("/:id", h.Delete)
	}

	api.Get("/dashboard", NewDashboardHandler(deps.DashboardUC, r).GetSummary)
	api.Get("/events", NewEventsHandler(deps.Bus, 25*time.Second).Stream)
}

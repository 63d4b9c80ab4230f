package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/phonestock-api/internal/application/analytics"
	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/application/events"
	"github.com/jhoicas/phonestock-api/internal/application/sales"
	"github.com/jhoicas/phonestock-api/internal/application/usecase"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
	infraexcel "github.com/jhoicas/phonestock-api/internal/infrastructure/excel"
	"github.com/jhoicas/phonestock-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/phonestock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/phonestock-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/phonestock-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/phonestock-api/internal/interfaces/http"
	"github.com/jhoicas/phonestock-api/pkg/config"
	"github.com/jhoicas/phonestock-api/pkg/logger"
)

// store lo que los casos de uso necesitan del almacenamiento (postgres o memoria).
type store interface {
	sales.TxRunner
	StockItems() repository.StockItemRepository
	Sales() repository.SaleRepository
	Ledger() repository.LedgerRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var st store
	switch cfg.DB.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		st = memory.NewStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		st = postgres.NewStore(pool)
	}

	// Con Redis los bloqueos y eventos se comparten entre instancias; sin él, quedan en proceso.
	bus := events.NewBus()
	var (
		locker    sales.StockLocker = memory.NewLocker(time.Duration(cfg.Redis.LockTTLSec) * time.Second)
		publisher events.Publisher  = bus
	)
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		locker = infraredis.NewLocker(rdb, time.Duration(cfg.Redis.LockTTLSec)*time.Second, log)
		publisher = infraredis.NewChangePublisher(rdb, cfg.Redis.Channel)
		relay := infraredis.NewChangeRelay(rdb, cfg.Redis.Channel, bus, log)
		go func() {
			if err := relay.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("relay de eventos Redis finalizado")
			}
		}()
	}

	v := dto.NewValidator()
	workflow := sales.NewWorkflow(st, st.Sales(), locker, publisher, v, log)
	documents := sales.NewDocumentsUseCase(st.Sales(), infrapdf.NewReceiptGenerator(cfg.App.Name), infraexcel.NewWorkbookBuilder())
	stockUC := usecase.NewStockUseCase(st.StockItems(), locker, publisher, v, log)
	ledgerUC := usecase.NewLedgerUseCase(st.Ledger(), publisher, v, log)
	dashboardUC := analytics.NewDashboardUseCase(st.StockItems(), st.Sales(), st.Ledger())

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// sin WriteTimeout: /api/events mantiene la conexión abierta
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.Path); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.Path,
			Path:     "docs",
			Title:    "Phone Stock API",
		}))
	} else {
		log.Warn().Str("path", cfg.Docs.Path).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.DB.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:     stockUC,
		Sales:       workflow,
		Documents:   documents,
		LedgerUC:    ledgerUC,
		DashboardUC: dashboardUC,
		Bus:         bus,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

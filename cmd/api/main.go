package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/cafe-pos-api/docs"
	appinventory "github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/ordering"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
	"github.com/jhoicas/cafe-pos-api/internal/application/usecase"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/activitylog"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/cafe-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/cafe-pos-api/internal/interfaces/http"
	"github.com/jhoicas/cafe-pos-api/pkg/config"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
	"github.com/jhoicas/cafe-pos-api/pkg/money"
)

// @title           Café POS API
// @version         1.0
// @description     Disponibilidad por receta, libro de inventario y ventas atómicas.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()

	// Almacenamiento: PostgreSQL o memoria (demo)
	var (
		txRunner appinventory.TxRunner
		repos    appinventory.TxRepos
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		txRunner, repos = store, store.Repos()
		if cfg.Store.Seed {
			sum, err := seed.Demo(ctx, store)
			if err != nil {
				log.Fatal().Err(err).Msg("datos demo")
			}
			log.Info().Int("items", sum.Items).Int("products", sum.Products).Msg("datos demo cargados")
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración")
		}
		txRunner, repos = postgres.NewTxRunner(pool), postgres.Repos(pool)
	}

	collector := metrics.NewCollector()
	activitySink := activitylog.NewSink(log.Component("activity"))
	formatter := money.NewFormatter(cfg.Currency.Symbol, cfg.Currency.Locale)

	ledger := appinventory.NewStockLedger(txRunner, repos.Items, repos.Movements,
		appinventory.WithActivityLogger(activitySink),
		appinventory.WithMetrics(collector),
	)
	coordinator := sales.NewCoordinator(txRunner, ledger, activitySink, collector)
	productUC := usecase.NewProductUseCase(repos.Products, activitySink)
	menuUC := usecase.NewMenuUseCase(repos.Products, repos.Recipes, cfg.Inventory.LowStockCanMake)
	recipeUC := usecase.NewRecipeUseCase(txRunner, repos.Recipes, repos.Products, activitySink, log.Component("recipes"))
	orderUC := ordering.NewOrderUseCase(txRunner, coordinator, repos.Orders, activitySink, collector, formatter)

	// PDF: recibo de la orden con QR de seguimiento
	receiptUC := ordering.NewReceiptUseCase(repos.Orders,
		infrapdf.NewReceiptGenerator(formatter),
		ordering.ReceiptInfo{StoreName: cfg.Currency.StoreName},
		cfg.Currency.TrackURL,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Café POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:        ledger,
		Coordinator:   coordinator,
		ProductUC:     productUC,
		MenuUC:        menuUC,
		RecipeUC:      recipeUC,
		OrderUC:       orderUC,
		ReceiptUC:     receiptUC,
		JWTSecret:     cfg.JWT.Secret,
		LowStockLimit: cfg.Inventory.LowStockListLimit,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

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

	_ "github.com/jhoicas/roi-admin-api/docs"
	"github.com/jhoicas/roi-admin-api/internal/application/auth"
	"github.com/jhoicas/roi-admin-api/internal/application/inventory"
	"github.com/jhoicas/roi-admin-api/internal/application/usecase"
	"github.com/jhoicas/roi-admin-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/roi-admin-api/internal/interfaces/http"
	"github.com/jhoicas/roi-admin-api/pkg/config"
	"github.com/jhoicas/roi-admin-api/pkg/logger"
)

// @title                       ROI Admin API
// @version                     1.0
// @description                 Back-office de inventario: movimientos, productos y catálogos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg.DB, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer backend.Close()

	ledger := inventory.NewStockLedger(backend.TxRunner, backend.Products, backend.Movements, log.Zerolog())
	productUC := usecase.NewProductUseCase(backend.Products, backend.Catalogs)
	catalogUC := usecase.NewCatalogUseCase(backend.Catalogs)
	userUC := usecase.NewUserUseCase(backend.Users)
	authUC := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ROI Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db_driver": backend.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    ledger,
		ProductUC: productUC,
		CatalogUC: catalogUC,
		UserUC:    userUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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

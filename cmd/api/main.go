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

	"github.com/jhoicas/Pedidos-api/internal/application/auth"
	appchat "github.com/jhoicas/Pedidos-api/internal/application/chat"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	domchat "github.com/jhoicas/Pedidos-api/internal/domain/chat"
	infrapdf "github.com/jhoicas/Pedidos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/jhoicas/Pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	menuRepo := postgres.NewMenuItemRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	menuUC := usecase.NewMenuUseCase(menuRepo)
	sessionUC := usecase.NewSessionUseCase(sessionRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo)

	receiptGen := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := usecase.NewReceiptUseCase(orderRepo, receiptGen, cfg.App.Name, cfg.Bot.Currency)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Resolver de intenciones: puro, sin efectos; el dispatcher hace la mutación.
	resolver := domchat.NewResolver(menuRepo, sessionRepo, domchat.Config{
		OwnerPhone: cfg.WhatsApp.OwnerPhone,
		SessionTTL: time.Duration(cfg.Bot.SessionTTLMinutes) * time.Minute,
	})
	dispatcher := appchat.NewDispatcher(resolver, sessionUC, orderUC, menuUC, menuRepo, log.Component("chat"), cfg.Bot.Currency)

	sender := whatsapp.NewCloudAPISender(cfg.WhatsApp)

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
		Title:    "Pedidos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Dispatcher:  dispatcher,
		Sender:      sender,
		MenuUC:      menuUC,
		OrderUC:     orderUC,
		ReceiptUC:   receiptUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
		VerifyToken: cfg.WhatsApp.VerifyToken,
		Logger:      log.Component("http"),
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

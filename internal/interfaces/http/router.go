package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Pedidos-api/internal/application/auth"
	appchat "github.com/jhoicas/Pedidos-api/internal/application/chat"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Dispatcher  *appchat.Dispatcher
	Sender      appchat.MessageSender
	MenuUC      *usecase.MenuUseCase
	OrderUC     *usecase.OrderUseCase
	ReceiptUC   *usecase.ReceiptUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
	VerifyToken string
	Logger      zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Webhook de WhatsApp (público; Meta valida con el verify token)
	webhookHandler := NewWebhookHandler(deps.Dispatcher, deps.Sender, deps.VerifyToken, deps.Logger)
	app.Get("/webhook", webhookHandler.Verify)
	app.Post("/webhook", webhookHandler.Receive)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas del dashboard (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Menú (protegido; crear y borrar solo admin)
	menu := protected.Group("/menu")
	menuHandler := NewMenuHandler(deps.MenuUC)
	menu.Get("/", menuHandler.List)
	menu.Get("/:id", menuHandler.GetByID)
	menu.Post("/", RequireRole(entity.RoleAdmin), menuHandler.Create)
	menu.Put("/:id", menuHandler.Update)
	menu.Patch("/:id/toggle", menuHandler.Toggle)
	menu.Delete("/:id", RequireRole(entity.RoleAdmin), menuHandler.Delete)

	// Pedidos (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)
	orders.Get("/", orderHandler.List)
	orders.Get("/stats", orderHandler.Stats)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Patch("/:ref/complete", orderHandler.Complete)
	orders.Patch("/:ref/cancel", orderHandler.Cancel)
}

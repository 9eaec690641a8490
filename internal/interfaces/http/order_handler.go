package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	uc       *usecase.OrderUseCase
	receipts *usecase.ReceiptUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase, receipts *usecase.ReceiptUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, receipts: receipts}
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        filter  query  string  false  "all | today | pending | completed"  default(all)
// @Success      200     {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	filter := c.Query("filter", "all")
	switch filter {
	case "all", "today", "pending", "completed":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filter debe ser all, today, pending o completed"})
	}
	orders, err := h.uc.ListByFilter(filter, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, usecase.ToOrderResponse(o))
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Marcar pedido como completado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        ref  path  string  true  "ID o código corto del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{ref}/complete [patch]
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Complete)
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        ref  path  string  true  "ID o código corto del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{ref}/cancel [patch]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

// Stats godoc
// @Summary      Resumen de pedidos del negocio
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderStatsResponse
// @Router       /api/orders/stats [get]
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo del pedido en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, err := h.receipts.Generate(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="recibo-%s.pdf"`, id))
	return c.Send(pdfBytes)
}

// transition aplica Complete o Cancel con el mapeo de errores compartido.
func (h *OrderHandler) transition(c *fiber.Ctx, fn func(string) (*entity.Order, error)) error {
	ref := c.Params("ref")
	if ref == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_REF", Message: "ref es requerido"})
	}
	order, err := fn(ref)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		if err == domain.ErrOrderNotPending {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_PENDING", Message: "el pedido ya no está pendiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(usecase.ToOrderResponse(order))
}

package usecase

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ReceiptGenerator puerto de generación del recibo imprimible de un pedido.
// La implementación (Maroto) vive en infrastructure/pdf.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, order *entity.Order, businessName, currency string) ([]byte, error)
}

// ReceiptUseCase genera el PDF de recibo de un pedido para el dashboard.
type ReceiptUseCase struct {
	orders       repository.OrderRepository
	generator    ReceiptGenerator
	businessName string
	currency     string
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orders repository.OrderRepository, generator ReceiptGenerator, businessName, currency string) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, generator: generator, businessName: businessName, currency: currency}
}

// Generate produce los bytes del PDF para el pedido indicado.
func (uc *ReceiptUseCase) Generate(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateReceipt(ctx, order, uc.businessName, uc.currency)
}

package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// OrderUseCase ciclo de vida de pedidos: creación desde el chat, listados y
// acciones del operador, y estado de pago.
type OrderUseCase struct {
	repo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

// CreateFromChat crea un pedido pendiente con las líneas ya resueltas por el
// resolver. El total se recalcula aquí como última línea de defensa.
func (uc *OrderUseCase) CreateFromChat(phone, customerName, deliveryLocation string, items []entity.OrderItem) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	now := time.Now()
	order := &entity.Order{
		ID:               uuid.New().String(),
		Phone:            phone,
		CustomerName:     customerName,
		Items:            items,
		Total:            total,
		Status:           entity.OrderStatusPending,
		PaymentStatus:    entity.PaymentStatusPending,
		DeliveryLocation: deliveryLocation,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// RecentByPhone pedidos recientes de un cliente (para "order status").
func (uc *OrderUseCase) RecentByPhone(phone string, limit int) ([]*entity.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	return uc.repo.ListByPhone(phone, limit)
}

// ListByFilter listado del operador: all, today, pending, completed.
func (uc *OrderUseCase) ListByFilter(filter string, now time.Time) ([]*entity.Order, error) {
	f := repository.OrderFilter{Limit: 20}
	switch filter {
	case "", "all":
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		f.Since = &start
	case "pending":
		f.Status = entity.OrderStatusPending
	case "completed":
		f.Status = entity.OrderStatusCompleted
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.ListByFilter(f)
}

// resolveRef busca un pedido por ID completo y luego por código corto.
func (uc *OrderUseCase) resolveRef(ref string) (*entity.Order, error) {
	order, err := uc.repo.GetByID(ref)
	if err != nil {
		return nil, err
	}
	if order != nil {
		return order, nil
	}
	return uc.repo.GetByShortCode(ref)
}

// Complete marca un pedido como completado. Acepta ID completo o código corto.
func (uc *OrderUseCase) Complete(ref string) (*entity.Order, error) {
	order, err := uc.resolveRef(ref)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domain.ErrOrderNotPending
	}
	if err := uc.repo.UpdateStatus(order.ID, entity.OrderStatusCompleted); err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatusCompleted
	return order, nil
}

// Cancel cancela un pedido pendiente. Acepta ID completo o código corto.
func (uc *OrderUseCase) Cancel(ref string) (*entity.Order, error) {
	order, err := uc.resolveRef(ref)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domain.ErrOrderNotPending
	}
	if err := uc.repo.UpdateStatus(order.ID, entity.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatusCancelled
	return order, nil
}

// SelectPaymentMethod fija el método de pago del pedido pendiente más reciente.
func (uc *OrderUseCase) SelectPaymentMethod(phone, method string) (*entity.Order, error) {
	if method != entity.PaymentMethodCOD && method != entity.PaymentMethodUPI {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.repo.LatestPendingByPhone(phone)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.UpdatePayment(order.ID, order.PaymentStatus, method, order.TransactionRef); err != nil {
		return nil, err
	}
	order.PaymentMethod = method
	return order, nil
}

// ConfirmPayment registra la referencia de transacción reportada por el
// cliente y marca el pago del pedido pendiente más reciente. La referencia se
// acepta de buena fe: no hay verificación contra pasarela.
func (uc *OrderUseCase) ConfirmPayment(phone, transactionRef string) (*entity.Order, error) {
	order, err := uc.repo.LatestPendingByPhone(phone)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	method := order.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodUPI
	}
	if err := uc.repo.UpdatePayment(order.ID, entity.PaymentStatusPaid, method, transactionRef); err != nil {
		return nil, err
	}
	order.PaymentStatus = entity.PaymentStatusPaid
	order.PaymentMethod = method
	order.TransactionRef = transactionRef
	return order, nil
}

// PaymentStatusByPhone estado de pago del pedido pendiente más reciente.
func (uc *OrderUseCase) PaymentStatusByPhone(phone string) (*entity.Order, error) {
	return uc.repo.LatestPendingByPhone(phone)
}

// Stats resumen agregado para "stats" del operador y el dashboard.
func (uc *OrderUseCase) Stats(now time.Time) (*dto.OrderStatsResponse, error) {
	stats, err := uc.repo.Stats(now)
	if err != nil {
		return nil, err
	}
	return &dto.OrderStatsResponse{
		TotalOrders:     stats.TotalOrders,
		PendingOrders:   stats.PendingOrders,
		CompletedOrders: stats.CompletedOrders,
		CancelledOrders: stats.CancelledOrders,
		PaidOrders:      stats.PaidOrders,
		TodayOrders:     stats.TodayOrders,
		TodayRevenue:    stats.TodayRevenue,
	}, nil
}

// ToOrderResponse proyección del pedido para el API del dashboard.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			LineTotal:  it.LineTotal,
		})
	}
	return &dto.OrderResponse{
		ID:               o.ID,
		ShortCode:        o.ShortCode(),
		Phone:            o.Phone,
		CustomerName:     o.CustomerName,
		Items:            items,
		Total:            o.Total,
		Status:           o.Status,
		PaymentStatus:    o.PaymentStatus,
		PaymentMethod:    o.PaymentMethod,
		TransactionRef:   o.TransactionRef,
		DeliveryLocation: o.DeliveryLocation,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

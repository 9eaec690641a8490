package repository

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// OrderStats métricas agregadas para el resumen del operador.
type OrderStats struct {
	TotalOrders     int
	PendingOrders   int
	CompletedOrders int
	CancelledOrders int
	PaidOrders      int
	TodayOrders     int
	TodayRevenue    string // decimal serializado por el repositorio
}

// OrderFilter filtro de listado de pedidos del operador.
type OrderFilter struct {
	Status string     // vacío = todos
	Since  *time.Time // vacío = sin corte temporal
	Limit  int
}

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetByShortCode resuelve un pedido por el sufijo de su ID (referencia del operador).
	GetByShortCode(code string) (*entity.Order, error)
	ListByPhone(phone string, limit int) ([]*entity.Order, error)
	ListByFilter(filter OrderFilter) ([]*entity.Order, error)
	// LatestPendingByPhone devuelve el pedido pendiente más reciente del cliente (nil si no hay).
	LatestPendingByPhone(phone string) (*entity.Order, error)
	UpdateStatus(id, status string) error
	UpdatePayment(id, paymentStatus, paymentMethod, transactionRef string) error
	Stats(now time.Time) (*OrderStats, error)
}

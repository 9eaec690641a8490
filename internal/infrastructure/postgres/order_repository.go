package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// Las líneas del pedido se guardan como JSONB: son un snapshot inmutable del
// precio al momento de ordenar, no referencias vivas al menú.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, phone, customer_name, items, total, status, payment_status,
	payment_method, transaction_ref, delivery_location, created_at, updated_at`

// Create persiste un nuevo pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	query := `
		INSERT INTO orders
			(id, phone, customer_name, items, total, status, payment_status,
			 payment_method, transaction_ref, delivery_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		order.ID, order.Phone, order.CustomerName, items, order.Total,
		order.Status, order.PaymentStatus, order.PaymentMethod, order.TransactionRef,
		order.DeliveryLocation, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.queryOne(query, id)
}

// GetByShortCode resuelve el pedido más reciente cuyo ID termina en el código.
func (r *OrderRepo) GetByShortCode(code string) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE id LIKE '%' || $1
		ORDER BY created_at DESC LIMIT 1`
	return r.queryOne(query, code)
}

// ListByPhone pedidos de un cliente, más recientes primero.
func (r *OrderRepo) ListByPhone(phone string, limit int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE phone = $1 ORDER BY created_at DESC LIMIT $2`
	return r.queryList(query, phone, limit)
}

// ListByFilter listado del operador por estado y/o fecha de corte.
func (r *OrderRepo) ListByFilter(filter repository.OrderFilter) ([]*entity.Order, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	return r.queryList(query, args...)
}

// LatestPendingByPhone el pedido pendiente más reciente del cliente (nil si no hay).
func (r *OrderRepo) LatestPendingByPhone(phone string) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE phone = $1 AND status = 'pending'
		ORDER BY created_at DESC LIMIT 1`
	return r.queryOne(query, phone)
}

// UpdateStatus cambia el estado del pedido.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// UpdatePayment actualiza el estado de pago, método y referencia de transacción.
func (r *OrderRepo) UpdatePayment(id, paymentStatus, paymentMethod, transactionRef string) error {
	query := `
		UPDATE orders SET payment_status = $2, payment_method = $3, transaction_ref = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, paymentStatus, paymentMethod, transactionRef, time.Now())
	if err != nil {
		return fmt.Errorf("update order payment: %w", err)
	}
	return nil
}

// Stats agregados para el resumen del operador, en una sola consulta.
func (r *OrderRepo) Stats(now time.Time) (*repository.OrderStats, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*) FILTER (WHERE payment_status = 'paid'),
			COUNT(*) FILTER (WHERE created_at >= $1),
			COALESCE(SUM(total) FILTER (WHERE created_at >= $1 AND status <> 'cancelled'), 0)::text
		FROM orders`
	var s repository.OrderStats
	err := r.q.QueryRow(context.Background(), query, todayStart).Scan(
		&s.TotalOrders, &s.PendingOrders, &s.CompletedOrders, &s.CancelledOrders,
		&s.PaidOrders, &s.TodayOrders, &s.TodayRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	return &s, nil
}

func (r *OrderRepo) queryOne(query string, args ...any) (*entity.Order, error) {
	var o entity.Order
	var items []byte
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&o.ID, &o.Phone, &o.CustomerName, &items, &o.Total, &o.Status, &o.PaymentStatus,
		&o.PaymentMethod, &o.TransactionRef, &o.DeliveryLocation, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &o, nil
}

func (r *OrderRepo) queryList(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		var items []byte
		if err := rows.Scan(
			&o.ID, &o.Phone, &o.CustomerName, &items, &o.Total, &o.Status, &o.PaymentStatus,
			&o.PaymentMethod, &o.TransactionRef, &o.DeliveryLocation, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

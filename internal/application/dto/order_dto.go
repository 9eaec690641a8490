package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// OrderResponse pedido para el dashboard y los reportes del operador.
type OrderResponse struct {
	ID               string              `json:"id"`
	ShortCode        string              `json:"short_code"`
	Phone            string              `json:"phone"`
	CustomerName     string              `json:"customer_name"`
	Items            []OrderItemResponse `json:"items"`
	Total            decimal.Decimal     `json:"total"`
	Status           string              `json:"status"`
	PaymentStatus    string              `json:"payment_status"`
	PaymentMethod    string              `json:"payment_method,omitempty"`
	TransactionRef   string              `json:"transaction_ref,omitempty"`
	DeliveryLocation string              `json:"delivery_location"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderStatsResponse resumen para "stats" del operador y el dashboard.
type OrderStatsResponse struct {
	TotalOrders     int    `json:"total_orders"`
	PendingOrders   int    `json:"pending_orders"`
	CompletedOrders int    `json:"completed_orders"`
	CancelledOrders int    `json:"cancelled_orders"`
	PaidOrders      int    `json:"paid_orders"`
	TodayOrders     int    `json:"today_orders"`
	TodayRevenue    string `json:"today_revenue"`
}

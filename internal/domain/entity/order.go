package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Estados de pago.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Métodos de pago aceptados por el asistente.
const (
	PaymentMethodCOD = "cod" // contra entrega
	PaymentMethodUPI = "upi"
)

// Largo del código corto usado por el operador para referirse a un pedido.
const ShortCodeLength = 6

// OrderItem es una línea del pedido: snapshot de nombre y precio al momento de ordenar.
type OrderItem struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"` // Quantity × UnitPrice
}

// Order representa un pedido originado en el chat.
type Order struct {
	ID               string
	Phone            string // cliente que ordenó
	CustomerName     string
	Items            []OrderItem
	Total            decimal.Decimal
	Status           string // pending, completed, cancelled
	PaymentStatus    string // pending, paid
	PaymentMethod    string // cod, upi, vacío si no elegido
	TransactionRef   string // referencia libre reportada por el cliente (sin verificar)
	DeliveryLocation string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ShortCode devuelve el sufijo del ID usado como referencia de baja fricción en el chat.
func (o *Order) ShortCode() string {
	if o == nil || len(o.ID) < ShortCodeLength {
		return ""
	}
	return o.ID[len(o.ID)-ShortCodeLength:]
}

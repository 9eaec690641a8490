// Package chat contiene el núcleo conversacional del asistente de pedidos:
// la máquina de estados de onboarding por teléfono (gate) y el resolver de
// intenciones con su cadena de precedencia fija.
//
// El paquete es puro: no escribe en la base de datos ni envía mensajes. Dada
// la misma entrada (mensaje, teléfono, snapshot de catálogo y sesión) produce
// siempre el mismo ParsedIntent; toda mutación la ejecuta el caller según la
// intención emitida.
package chat

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// Intent identifica qué quiere el cliente u operador. El resolver produce
// exactamente una por mensaje; IntentUnknown es el fallback.
type Intent string

// Onboarding (emitidas por el gate).
const (
	IntentRequestCustomerName     Intent = "request_customer_name"
	IntentSaveCustomerName        Intent = "save_customer_name"
	IntentRequestCustomerLocation Intent = "request_customer_location"
	IntentSaveCustomerLocation    Intent = "save_customer_location"
	IntentRequestCurrentLocation  Intent = "request_current_location"
	IntentSaveCurrentLocation     Intent = "save_current_location"
)

// Pagos. Siempre alcanzables, incluso a mitad de onboarding.
const (
	IntentSelectPaymentMethod Intent = "select_payment_method"
	IntentConfirmPayment      Intent = "confirm_payment"
	IntentPaymentStatus       Intent = "payment_status"
	IntentPaymentOptions      Intent = "payment_options"
	IntentPaymentHelp         Intent = "payment_help"
)

// Pedidos y consultas generales.
const (
	IntentPlaceOrder  Intent = "place_order"
	IntentOrderStatus Intent = "order_status"
	IntentHelp        Intent = "help"
	IntentShowMenu    Intent = "show_menu"
	IntentSearchMenu  Intent = "search_menu"
	IntentUnknown     Intent = "unknown"
)

// Comandos del operador (solo desde el teléfono del dueño).
const (
	IntentOwnerListOrders    Intent = "owner_list_orders"
	IntentOwnerCompleteOrder Intent = "owner_complete_order"
	IntentOwnerCancelOrder   Intent = "owner_cancel_order"
	IntentOwnerStats         Intent = "owner_stats"
	IntentOwnerMenuManage    Intent = "owner_menu_manage"
	IntentOwnerAddItem       Intent = "owner_add_item"
	IntentOwnerEditItem      Intent = "owner_edit_item"
	IntentOwnerDeleteItem    Intent = "owner_delete_item"
	IntentOwnerToggleItem    Intent = "owner_toggle_item"
)

// ParsedIntent es la salida del resolver: una intención y sus datos extraídos.
// DroppedSegments cuenta segmentos de pedidos multi-ítem que no resolvieron
// contra el catálogo (se descartan en silencio, pero el caller puede avisar).
type ParsedIntent struct {
	Intent          Intent
	Data            map[string]any
	DroppedSegments int
}

// Catalog es el colaborador de solo lectura del menú. SearchByName es
// substring case-insensitive sobre ítems disponibles, en orden estable:
// el primer resultado es autoritativo para pedidos por nombre.
type Catalog interface {
	GetByID(id string) (*entity.MenuItem, error)
	SearchByName(term string) ([]*entity.MenuItem, error)
	ListAvailable() ([]*entity.MenuItem, error)
}

// SessionReader es el colaborador de lectura del estado de sesión por teléfono.
// Un teléfono nunca visto devuelve (nil, nil).
type SessionReader interface {
	Get(phone string) (*entity.CustomerSession, error)
}

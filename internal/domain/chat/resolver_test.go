package chat_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain/chat"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de colaboradores
// ──────────────────────────────────────────────────────────────────────────────

type fakeCatalog struct {
	items []*entity.MenuItem
	err   error
}

func (f *fakeCatalog) GetByID(id string) (*entity.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) SearchByName(term string) ([]*entity.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.MenuItem
	for _, it := range f.items {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(term)) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListAvailable() ([]*entity.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeSessions struct {
	byPhone map[string]*entity.CustomerSession
	err     error
}

func (f *fakeSessions) Get(phone string) (*entity.CustomerSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byPhone[phone], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerPhone    = "919900000000"
	customerPhone = "919811111111"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func price(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func testMenu() []*entity.MenuItem {
	return []*entity.MenuItem{
		{ID: "m-001", Name: "Chicken Biryani", Price: price("180"), Available: true},
		{ID: "m-002", Name: "Veg Biryani", Price: price("140"), Available: true},
		{ID: "m-003", Name: "Samosa", Price: price("25"), Available: true},
		{ID: "m-004", Name: "Mango Lassi", Price: price("60"), Available: true},
	}
}

// activeSession sesión con onboarding completo y ubicación fresca.
func activeSession() *entity.CustomerSession {
	upd := fixedNow.Add(-5 * time.Minute)
	return &entity.CustomerSession{
		Phone:              customerPhone,
		Name:               "Ravi Kumar",
		HomeLocation:       "MG Road 12, Bangalore",
		CurrentLocation:    "MG Road 12, Bangalore",
		LastLocationUpdate: &upd,
		SessionActive:      true,
	}
}

// staleSession onboarding completo pero la ubicación excede la ventana de frescura.
func staleSession() *entity.CustomerSession {
	s := activeSession()
	upd := fixedNow.Add(-45 * time.Minute)
	s.LastLocationUpdate = &upd
	return s
}

func newResolver(sessions map[string]*entity.CustomerSession) *chat.Resolver {
	return chat.NewResolver(
		&fakeCatalog{items: testMenu()},
		&fakeSessions{byPhone: sessions},
		chat.Config{
			OwnerPhone: ownerPhone,
			SessionTTL: 30 * time.Minute,
			Now:        func() time.Time { return fixedNow },
		},
	)
}

func activeResolver() *chat.Resolver {
	return newResolver(map[string]*entity.CustomerSession{customerPhone: activeSession()})
}

// ──────────────────────────────────────────────────────────────────────────────
// Precedencia: pago primero
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_PagoGanaDuranteOnboarding(t *testing.T) {
	// Teléfono nunca visto (estado NEW): un comando de pago debe resolverse
	// igual, sin que el gate lo intercepte como candidato a nombre.
	r := newResolver(nil)

	parsed, err := r.Resolve("paid TXN987654321", customerPhone)
	require.NoError(t, err)

	assert.Equal(t, chat.IntentConfirmPayment, parsed.Intent,
		"el pago debe ganarle al gate de onboarding")
	assert.Equal(t, "TXN987654321", parsed.Data["transactionId"],
		"la referencia debe conservar mayúsculas")
}

func TestResolve_ConfirmacionConReferenciaNoASCII(t *testing.T) {
	// Referencias con runas cuyo mapeo a minúsculas cambia la longitud en
	// bytes (Ⱥ→ⱥ crece, İ→i encoge): deben llegar intactas, sin pánico.
	r := newResolver(nil)

	cases := []struct {
		message string
		ref     string
	}{
		{"paid ȺȺȺȺȺȺ", "ȺȺȺȺȺȺ"},
		{"paid İİİİİİ", "İİİİİİ"},
		{"PAID TXN-Ⱥ99", "TXN-Ⱥ99"},
		{"Confirm Payment ref İ-001", "ref İ-001"},
	}
	for _, tc := range cases {
		parsed, err := r.Resolve(tc.message, customerPhone)
		require.NoError(t, err, "mensaje: %q", tc.message)
		assert.Equal(t, chat.IntentConfirmPayment, parsed.Intent, "mensaje: %q", tc.message)
		assert.Equal(t, tc.ref, parsed.Data["transactionId"],
			"la referencia debe conservarse tal cual")
	}
}

func TestResolve_SeleccionDeMetodoDePago(t *testing.T) {
	r := activeResolver()

	for _, method := range []string{"cod", "upi"} {
		parsed, err := r.Resolve("pay "+method, customerPhone)
		require.NoError(t, err)
		assert.Equal(t, chat.IntentSelectPaymentMethod, parsed.Intent)
		assert.Equal(t, method, parsed.Data["method"])
	}
}

func TestResolve_ConsultasDePago(t *testing.T) {
	r := activeResolver()

	cases := map[string]chat.Intent{
		"payment status":  chat.IntentPaymentStatus,
		"payment options": chat.IntentPaymentOptions,
		"payment help":    chat.IntentPaymentHelp,
	}
	for msg, want := range cases {
		parsed, err := r.Resolve(msg, customerPhone)
		require.NoError(t, err)
		assert.Equal(t, want, parsed.Intent, "mensaje: %q", msg)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Gate de onboarding
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_NuevoClienteConNombre(t *testing.T) {
	r := newResolver(nil)

	parsed, err := r.Resolve("my name is ravi kumar", customerPhone)
	require.NoError(t, err)

	assert.Equal(t, chat.IntentSaveCustomerName, parsed.Intent)
	assert.Equal(t, "Ravi Kumar", parsed.Data["name"],
		"el nombre debe guardarse en Title Case")
}

func TestResolve_NuevoClienteSinNombreValido(t *testing.T) {
	r := newResolver(nil)

	// "help" es palabra reservada: no se acepta como nombre.
	parsed, err := r.Resolve("help", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentRequestCustomerName, parsed.Intent,
		"una palabra reservada no puede capturarse como nombre")
}

func TestResolve_NombreCapturadoPideUbicacion(t *testing.T) {
	sessions := map[string]*entity.CustomerSession{
		customerPhone: {Phone: customerPhone, Name: "Ravi Kumar"},
	}
	r := newResolver(sessions)

	parsed, err := r.Resolve("MG Road 12, Bangalore", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentSaveCustomerLocation, parsed.Intent)
	assert.Equal(t, "MG Road 12, Bangalore", parsed.Data["location"])

	parsed, err = r.Resolve("menu", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentRequestCustomerLocation, parsed.Intent,
		"palabra reservada no es una dirección; se vuelve a pedir")
}

func TestResolve_SesionVencidaPideUbicacionActual(t *testing.T) {
	r := newResolver(map[string]*entity.CustomerSession{customerPhone: staleSession()})

	parsed, err := r.Resolve("Indiranagar 100ft Road", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentSaveCurrentLocation, parsed.Intent)
	assert.Equal(t, "Indiranagar 100ft Road", parsed.Data["location"])

	parsed, err = r.Resolve("hi", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentRequestCurrentLocation, parsed.Intent,
		"con sesión vencida el saludo no llega a la regla de menú")
}

func TestResolve_SesionFrescaNoIntercepta(t *testing.T) {
	r := activeResolver()

	parsed, err := r.Resolve("hi", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentShowMenu, parsed.Intent,
		"con sesión activa el saludo muestra el menú")
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_PedidoMultiItem(t *testing.T) {
	r := activeResolver()

	parsed, err := r.Resolve("order 2 chicken biryani and 1 samosa, 3 mango lassi", customerPhone)
	require.NoError(t, err)

	require.Equal(t, chat.IntentPlaceOrder, parsed.Intent)
	assert.Equal(t, true, parsed.Data["isMultipleItems"])
	assert.Zero(t, parsed.DroppedSegments)

	items, ok := parsed.Data["items"].([]entity.OrderItem)
	require.True(t, ok, "items debe ser []entity.OrderItem")
	require.Len(t, items, 3)
	assert.Equal(t, "Chicken Biryani", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)

	// 2×180 + 1×25 + 3×60 = 565
	total, ok := parsed.Data["totalAmount"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, total.Equal(price("565")), "total esperado 565, fue %s", total)
}

func TestResolve_PedidoSingleItemConModificadores(t *testing.T) {
	r := activeResolver()

	parsed, err := r.Resolve("i want 2 veg biryani for delivery please", customerPhone)
	require.NoError(t, err)

	require.Equal(t, chat.IntentPlaceOrder, parsed.Intent)
	assert.Equal(t, false, parsed.Data["isMultipleItems"])
	assert.Equal(t, 2, parsed.Data["quantity"])

	item, ok := parsed.Data["menuItem"].(*entity.MenuItem)
	require.True(t, ok)
	assert.Equal(t, "Veg Biryani", item.Name)

	total, ok := parsed.Data["total"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, total.Equal(price("280")), "total esperado 280, fue %s", total)
}

func TestResolve_PedidoPorID(t *testing.T) {
	r := activeResolver()

	parsed, err := r.Resolve("order 3 item m-003", customerPhone)
	require.NoError(t, err)

	require.Equal(t, chat.IntentPlaceOrder, parsed.Intent)
	item := parsed.Data["menuItem"].(*entity.MenuItem)
	assert.Equal(t, "Samosa", item.Name)
	assert.Equal(t, 3, parsed.Data["quantity"])
}

func TestResolve_SegmentosNoResueltosSeDescartan(t *testing.T) {
	r := activeResolver()

	// "unicorn pasta" no existe: el segmento se descarta en silencio y el
	// descarte queda contabilizado para que la respuesta lo avise.
	parsed, err := r.Resolve("order 2 chicken biryani, 5 unicorn pasta", customerPhone)
	require.NoError(t, err)

	require.Equal(t, chat.IntentPlaceOrder, parsed.Intent)
	assert.Equal(t, false, parsed.Data["isMultipleItems"],
		"con un solo segmento resuelto la forma es single-item")
	assert.Equal(t, 1, parsed.DroppedSegments)
}

func TestResolve_PedidoSinNingunItemCaeAOtrasReglas(t *testing.T) {
	r := activeResolver()

	parsed, err := r.Resolve("order something tasty", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentUnknown, parsed.Intent,
		"sin cantidad ni ítem resoluble el pedido no matchea y cae al fallback")
}

func TestResolve_CantidadCeroNoResuelve(t *testing.T) {
	r := activeResolver()

	parsed, err := r.Resolve("order 0 samosa", customerPhone)
	require.NoError(t, err)
	assert.NotEqual(t, chat.IntentPlaceOrder, parsed.Intent,
		"cantidad 0 no es un pedido válido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Help, estado de pedidos, búsqueda, fallback
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_Help(t *testing.T) {
	r := activeResolver()

	parsed, err := r.Resolve("how does this work", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentHelp, parsed.Intent)
}

func TestResolve_ShowMeNoDisparaHelp(t *testing.T) {
	// "show me" contiene "how" como substring pero no como palabra: debe ser
	// búsqueda, no help.
	r := activeResolver()

	parsed, err := r.Resolve("show me samosa", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentSearchMenu, parsed.Intent)
	assert.Equal(t, "samosa", parsed.Data["term"])
}

func TestResolve_EstadoDePedidos(t *testing.T) {
	r := activeResolver()

	parsed, err := r.Resolve("my orders", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentOrderStatus, parsed.Intent)
}

func TestResolve_BusquedaConSignoDePregunta(t *testing.T) {
	r := activeResolver()

	parsed, err := r.Resolve("do you have biryani?", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentSearchMenu, parsed.Intent)
	assert.Equal(t, "biryani", parsed.Data["term"],
		"el signo de pregunta final no es parte del término")
}

func TestResolve_FallbackConservaElMensaje(t *testing.T) {
	r := activeResolver()

	parsed, err := r.Resolve("xyzzy plugh", customerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentUnknown, parsed.Intent)
	assert.Equal(t, "xyzzy plugh", parsed.Data["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Comandos del operador
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_OwnerSaltaOnboarding(t *testing.T) {
	// El dueño no tiene sesión registrada y aun así sus comandos funcionan.
	r := newResolver(nil)

	parsed, err := r.Resolve("orders pending", ownerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentOwnerListOrders, parsed.Intent)
	assert.Equal(t, "pending", parsed.Data["filter"])
}

func TestResolve_OwnerListaPedidosFiltroPorDefecto(t *testing.T) {
	r := newResolver(nil)

	parsed, err := r.Resolve("orders", ownerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentOwnerListOrders, parsed.Intent)
	assert.Equal(t, "all", parsed.Data["filter"])
}

func TestResolve_OwnerCompletaYCancela(t *testing.T) {
	r := newResolver(nil)

	parsed, err := r.Resolve("complete order a3f9k2", ownerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentOwnerCompleteOrder, parsed.Intent)
	assert.Equal(t, "a3f9k2", parsed.Data["orderId"])

	parsed, err = r.Resolve("done a3f9k2", ownerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentOwnerCompleteOrder, parsed.Intent)
	assert.Equal(t, "a3f9k2", parsed.Data["token"])

	parsed, err = r.Resolve("cancel order a3f9k2", ownerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentOwnerCancelOrder, parsed.Intent)
}

func TestResolve_OwnerStatsYMenuManage(t *testing.T) {
	r := newResolver(nil)

	parsed, err := r.Resolve("stats", ownerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentOwnerStats, parsed.Intent)

	parsed, err = r.Resolve("menu manage", ownerPhone)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentOwnerMenuManage, parsed.Intent)
}

func TestResolve_OwnerAddItem(t *testing.T) {
	r := newResolver(nil)

	parsed, err := r.Resolve("add item Samosa 25 Crispy fried pastry", ownerPhone)
	require.NoError(t, err)

	require.Equal(t, chat.IntentOwnerAddItem, parsed.Intent)
	assert.Equal(t, "Samosa", parsed.Data["name"], "el nombre conserva mayúsculas")
	assert.Equal(t, "Crispy fried pastry", parsed.Data["description"])

	p, ok := parsed.Data["price"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, p.Equal(price("25")))
}

func TestResolve_OwnerEditItem(t *testing.T) {
	r := newResolver(nil)

	parsed, err := r.Resolve("edit item samosa price 30", ownerPhone)
	require.NoError(t, err)
	require.Equal(t, chat.IntentOwnerEditItem, parsed.Intent)
	assert.Equal(t, "price", parsed.Data["field"])

	parsed, err = r.Resolve("edit item samosa name Punjabi Samosa", ownerPhone)
	require.NoError(t, err)
	require.Equal(t, chat.IntentOwnerEditItem, parsed.Intent)
	assert.Equal(t, "name", parsed.Data["field"])
	assert.Equal(t, "Punjabi Samosa", parsed.Data["name"])
}

func TestResolve_NoOwnerNuncaRecibeComandosDeOperador(t *testing.T) {
	r := activeResolver()

	for _, msg := range []string{"stats", "complete order abc123", "delete item samosa", "add item Pizza 200"} {
		parsed, err := r.Resolve(msg, customerPhone)
		require.NoError(t, err)
		assert.NotContains(t, string(parsed.Intent), "owner_",
			"mensaje %q de un cliente no puede resolver a comando de operador", msg)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Pureza y fallos de colaboradores
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_EsIdempotente(t *testing.T) {
	r := activeResolver()

	first, err := r.Resolve("order 2 samosa", customerPhone)
	require.NoError(t, err)
	second, err := r.Resolve("order 2 samosa", customerPhone)
	require.NoError(t, err)

	assert.Equal(t, first, second, "resolver el mismo mensaje dos veces da el mismo resultado")
}

func TestResolve_ErrorDelStoreDeSesiones(t *testing.T) {
	r := chat.NewResolver(
		&fakeCatalog{items: testMenu()},
		&fakeSessions{err: errors.New("db caída")},
		chat.Config{Now: func() time.Time { return fixedNow }},
	)

	_, err := r.Resolve("hi", customerPhone)
	require.Error(t, err, "fallo del store de sesiones debe propagarse")
}

func TestResolve_ErrorDelCatalogo(t *testing.T) {
	r := chat.NewResolver(
		&fakeCatalog{err: errors.New("db caída")},
		&fakeSessions{byPhone: map[string]*entity.CustomerSession{customerPhone: activeSession()}},
		chat.Config{SessionTTL: 30 * time.Minute, Now: func() time.Time { return fixedNow }},
	)

	_, err := r.Resolve("order 2 samosa", customerPhone)
	require.Error(t, err, "fallo del catálogo debe propagarse, no degradar a unknown")
}

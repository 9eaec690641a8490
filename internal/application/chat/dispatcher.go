// Package chat (capa de aplicación) despacha las intenciones resueltas por el
// núcleo conversacional hacia los casos de uso y arma el texto de respuesta.
package chat

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	domchat "github.com/jhoicas/Pedidos-api/internal/domain/chat"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// Dispatcher conecta resolver → casos de uso → respuesta. Toda la mutación
// (sesiones, pedidos, menú) ocurre aquí; el resolver es puro.
type Dispatcher struct {
	resolver	*domchat.Resolver
	sessions	*usecase.SessionUseCase
	orders	*usecase.OrderUseCase
	menu	*usecase.MenuUseCase
	menuRepo	repository.MenuItemRepository
	log	zerolog.Logger
	currency	string
	now	func() time.Time
}

// NewDispatcher construye el dispatcher.
func NewDispatcher(
	resolver *domchat.Resolver,
	sessions *usecase.SessionUseCase,
	orders *usecase.OrderUseCase,
	menu *usecase.MenuUseCase,
	menuRepo repository.MenuItemRepository,
	log zerolog.Logger,
	currency string,
) *Dispatcher {
	if currency == "" {
		currency = "₹"
	}
	return &Dispatcher{
		resolver: resolver,
		sessions: sessions,
		orders:   orders,
		menu:     menu,
		menuRepo: menuRepo,
		log:      log,
		currency: currency,
		now:      time.Now,
	}
}

// HandleMessage procesa un mensaje entrante y devuelve el texto de respuesta.
// Un error aquí significa fallo de colaborador (DB); el caller decide entre
// disculpa genérica y fallo duro.
func (d *Dispatcher) HandleMessage(phone, message string) (string, error) {
	// La sesión se crea en el primer contacto; el resolver solo la lee.
	if _, err := d.sessions.EnsureSession(phone); err != nil {
		return "", fmt.Errorf("crear sesión: %w", err)
	}

	parsed, err := d.resolver.Resolve(message, phone)
	if err != nil {
		return "", err
	}
	d.log.Debug().
		Str("phone", phone).
		Str("intent", string(parsed.Intent)).
		Int("dropped_segments", parsed.DroppedSegments).
		Msg("intención resuelta")

	return d.dispatch(phone, parsed)
}

func (d *Dispatcher) dispatch(phone string, parsed *domchat.ParsedIntent) (string, error) {
	switch parsed.Intent {

	// ── Onboarding ────────────────────────────────────────────────────────────
	case domchat.IntentRequestCustomerName:
		return replyAskName(), nil
	case domchat.IntentSaveCustomerName:
		name, _ := parsed.Data["name"].(string)
		if err := d.sessions.SaveName(phone, name); err != nil {
			return "", err
		}
		return replyNameSaved(name), nil
	case domchat.IntentRequestCustomerLocation:
		return replyAskLocation(), nil
	case domchat.IntentSaveCustomerLocation:
		loc, _ := parsed.Data["location"].(string)
		if err := d.sessions.SaveHomeLocation(phone, loc); err != nil {
			return "", err
		}
		return replyLocationSaved(), nil
	case domchat.IntentRequestCurrentLocation:
		return replyAskCurrentLocation(), nil
	case domchat.IntentSaveCurrentLocation:
		loc, _ := parsed.Data["location"].(string)
		if err := d.sessions.SaveCurrentLocation(phone, loc); err != nil {
			return "", err
		}
		return replyCurrentLocationSaved(), nil

	// ── Pagos ─────────────────────────────────────────────────────────────────
	case domchat.IntentSelectPaymentMethod:
		method, _ := parsed.Data["method"].(string)
		order, err := d.orders.SelectPaymentMethod(phone, method)
		if err != nil {
			if err == domain.ErrNotFound {
				return replyNoPendingOrder(), nil
			}
			return "", err
		}
		if method == entity.PaymentMethodCOD {
			return fmt.Sprintf("Cash on delivery it is 💵 Pay %s when your order %s arrives.",
				d.money(order.Total), order.ShortCode()), nil
		}
		return fmt.Sprintf("UPI selected 📲 Transfer %s and then send \"paid <transaction reference>\" for order %s.",
			d.money(order.Total), order.ShortCode()), nil

	case domchat.IntentConfirmPayment:
		ref, _ := parsed.Data["transactionId"].(string)
		order, err := d.orders.ConfirmPayment(phone, ref)
		if err != nil {
			if err == domain.ErrNotFound {
				return replyNoPendingOrder(), nil
			}
			return "", err
		}
		return fmt.Sprintf("Payment recorded ✅ (ref %s) Your order %s is marked as paid. Thank you!",
			ref, order.ShortCode()), nil

	case domchat.IntentPaymentStatus:
		order, err := d.orders.PaymentStatusByPhone(phone)
		if err != nil {
			return "", err
		}
		if order == nil {
			return replyNoPendingOrder(), nil
		}
		if order.PaymentStatus == entity.PaymentStatusPaid {
			return fmt.Sprintf("Order %s is paid (%s) ✅", order.ShortCode(), order.PaymentMethod), nil
		}
		return fmt.Sprintf("Order %s: payment pending, total %s. Send \"pay cod\" or \"pay upi\".",
			order.ShortCode(), d.money(order.Total)), nil

	case domchat.IntentPaymentOptions:
		return replyPaymentOptions(), nil
	case domchat.IntentPaymentHelp:
		return replyPaymentHelp(), nil

	// ── Pedidos ───────────────────────────────────────────────────────────────
	case domchat.IntentPlaceOrder:
		return d.placeOrder(phone, parsed)

	case domchat.IntentOrderStatus:
		orders, err := d.orders.RecentByPhone(phone, 5)
		if err != nil {
			return "", err
		}
		return d.renderRecentOrders(orders), nil

	// ── Consultas generales ───────────────────────────────────────────────────
	case domchat.IntentHelp:
		return replyHelp(), nil

	case domchat.IntentShowMenu:
		items, err := d.menu.ListAvailable()
		if err != nil {
			return "", err
		}
		return d.renderMenu(items), nil

	case domchat.IntentSearchMenu:
		term, _ := parsed.Data["term"].(string)
		items, err := d.menuRepo.SearchByName(term)
		if err != nil {
			return "", err
		}
		return d.renderSearchResults(term, items), nil

	// ── Operador ──────────────────────────────────────────────────────────────
	case domchat.IntentOwnerListOrders:
		filter, _ := parsed.Data["filter"].(string)
		orders, err := d.orders.ListByFilter(filter, d.now())
		if err != nil {
			return "", err
		}
		return d.renderOwnerOrders(filter, orders), nil

	case domchat.IntentOwnerCompleteOrder:
		ref := ownerOrderRef(parsed.Data)
		order, err := d.orders.Complete(ref)
		switch err {
		case nil:
			return fmt.Sprintf("Order %s marked as completed ✅", order.ShortCode()), nil
		case domain.ErrNotFound:
			return fmt.Sprintf("No order found for \"%s\".", ref), nil
		case domain.ErrOrderNotPending:
			return fmt.Sprintf("Order \"%s\" is not pending.", ref), nil
		default:
			return "", err
		}

	case domchat.IntentOwnerCancelOrder:
		ref := ownerOrderRef(parsed.Data)
		order, err := d.orders.Cancel(ref)
		switch err {
		case nil:
			return fmt.Sprintf("Order %s cancelled ❌", order.ShortCode()), nil
		case domain.ErrNotFound:
			return fmt.Sprintf("No order found for \"%s\".", ref), nil
		case domain.ErrOrderNotPending:
			return fmt.Sprintf("Order \"%s\" is not pending.", ref), nil
		default:
			return "", err
		}

	case domchat.IntentOwnerStats:
		stats, err := d.orders.Stats(d.now())
		if err != nil {
			return "", err
		}
		return d.renderStats(stats), nil

	case domchat.IntentOwnerMenuManage:
		return replyMenuManage(), nil

	case domchat.IntentOwnerAddItem:
		return d.ownerAddItem(parsed.Data)

	case domchat.IntentOwnerEditItem:
		return d.ownerEditItem(parsed.Data)

	case domchat.IntentOwnerDeleteItem:
		return d.ownerMutateItem(parsed.Data, "deleted 🗑", func(item *entity.MenuItem) error {
			return d.menu.Delete(item.ID)
		})

	case domchat.IntentOwnerToggleItem:
		itemRef, _ := parsed.Data["item"].(string)
		item, err := d.menu.FindByRef(itemRef)
		if err != nil {
			return "", err
		}
		if item == nil {
			return fmt.Sprintf("No menu item found for \"%s\".", itemRef), nil
		}
		updated, err := d.menu.ToggleAvailability(item.ID)
		if err != nil {
			return "", err
		}
		if updated.Available {
			return fmt.Sprintf("\"%s\" is now available ✅", updated.Name), nil
		}
		return fmt.Sprintf("\"%s\" is now unavailable 🚫", updated.Name), nil
	}

	// ── Fallback ──────────────────────────────────────────────────────────────
	return replyUnknown(), nil
}

// placeOrder materializa el ParsedIntent de pedido en un Order persistido.
func (d *Dispatcher) placeOrder(phone string, parsed *domchat.ParsedIntent) (string, error) {
	session, err := d.sessions.EnsureSession(phone)
	if err != nil {
		return "", err
	}

	var items []entity.OrderItem
	if multiple, _ := parsed.Data["isMultipleItems"].(bool); multiple {
		items, _ = parsed.Data["items"].([]entity.OrderItem)
	} else {
		qty, _ := parsed.Data["quantity"].(int)
		menuItem, _ := parsed.Data["menuItem"].(*entity.MenuItem)
		if menuItem != nil && qty >= 1 {
			items = []entity.OrderItem{{
				MenuItemID: menuItem.ID,
				Name:       menuItem.Name,
				Quantity:   qty,
				UnitPrice:  menuItem.Price,
				LineTotal:  menuItem.Price.Mul(decimal.NewFromInt(int64(qty))),
			}}
		}
	}
	if len(items) == 0 {
		return replyUnknown(), nil
	}

	order, err := d.orders.CreateFromChat(phone, session.Name, session.DeliveryLocation(), items)
	if err != nil {
		return "", err
	}
	d.log.Info().
		Str("phone", phone).
		Str("order_id", order.ID).
		Str("total", order.Total.String()).
		Msg("pedido creado desde el chat")
	return d.renderOrderConfirmation(order, parsed.DroppedSegments), nil
}

func (d *Dispatcher) ownerAddItem(data map[string]any) (string, error) {
	name, _ := data["name"].(string)
	price, _ := data["price"].(decimal.Decimal)
	desc, _ := data["description"].(string)
	created, err := d.menu.Create(dtoCreate(name, desc, price))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return "Usage: add item <name> <price> [description]", nil
		}
		return "", err
	}
	return fmt.Sprintf("Added \"%s\" at %s ✅", created.Name, d.money(created.Price)), nil
}

func (d *Dispatcher) ownerEditItem(data map[string]any) (string, error) {
	itemRef, _ := data["item"].(string)
	item, err := d.menu.FindByRef(itemRef)
	if err != nil {
		return "", err
	}
	if item == nil {
		return fmt.Sprintf("No menu item found for \"%s\".", itemRef), nil
	}
	field, _ := data["field"].(string)
	switch field {
	case "price":
		price, _ := data["price"].(decimal.Decimal)
		updated, err := d.menu.Update(item.ID, dtoUpdatePrice(price))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("\"%s\" now costs %s ✅", updated.Name, d.money(updated.Price)), nil
	case "name":
		newName, _ := data["name"].(string)
		updated, err := d.menu.Update(item.ID, dtoUpdateName(newName))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Renamed to \"%s\" ✅", updated.Name), nil
	}
	return replyMenuManage(), nil
}

func (d *Dispatcher) ownerMutateItem(data map[string]any, verb string, fn func(*entity.MenuItem) error) (string, error) {
	itemRef, _ := data["item"].(string)
	item, err := d.menu.FindByRef(itemRef)
	if err != nil {
		return "", err
	}
	if item == nil {
		return fmt.Sprintf("No menu item found for \"%s\".", itemRef), nil
	}
	if err := fn(item); err != nil {
		return "", err
	}
	return fmt.Sprintf("\"%s\" %s", item.Name, verb), nil
}

func dtoCreate(name, desc string, price decimal.Decimal) dto.CreateMenuItemRequest {
	return dto.CreateMenuItemRequest{Name: name, Description: desc, Price: price}
}

func dtoUpdatePrice(p decimal.Decimal) dto.UpdateMenuItemRequest {
	return dto.UpdateMenuItemRequest{Price: &p}
}

func dtoUpdateName(n string) dto.UpdateMenuItemRequest {
	return dto.UpdateMenuItemRequest{Name: &n}
}

// ownerOrderRef acepta tanto "orderId" (complete order <id>) como "token"
// (complete/done <token>); ambos se resuelven por ID o código corto.
func ownerOrderRef(data map[string]any) string {
	if id, ok := data["orderId"].(string); ok && id != "" {
		return id
	}
	token, _ := data["token"].(string)
	return token
}

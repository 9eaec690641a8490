package chat

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// Plantillas de respuesta del asistente. El texto hacia el cliente es inglés
// (idioma del negocio); el precio se formatea con el símbolo configurado.

func (d *Dispatcher) money(v decimal.Decimal) string {
	return d.currency + v.StringFixed(2)
}

func replyAskName() string {
	return "Hi! Welcome 👋 Before we start, what's your name?"
}

func replyNameSaved(name string) string {
	return fmt.Sprintf("Nice to meet you, %s! 🙌 Now, what's your delivery address?", name)
}

func replyAskLocation() string {
	return "Please share your delivery address (for example: \"12 MG Road, Indiranagar\")."
}

func replyLocationSaved() string {
	return "Address saved ✅ Send \"menu\" to see what's cooking, or order directly, e.g. \"order 2 chicken biryani\"."
}

func replyAskCurrentLocation() string {
	return "Welcome back! Where should we deliver this time? Share your current address."
}

func replyCurrentLocationSaved() string {
	return "Got it, delivering there ✅ What would you like to order?"
}

func replyHelp() string {
	return strings.Join([]string{
		"Here's what I can do:",
		"• \"menu\" — see available items",
		"• \"order 2 chicken biryani, 1 naan\" — place an order",
		"• \"search paneer\" — find an item",
		"• \"order status\" — your recent orders",
		"• \"pay cod\" / \"pay upi\" — choose payment",
		"• \"paid <reference>\" — confirm a payment",
	}, "\n")
}

func replyPaymentOptions() string {
	return "Payment options:\n• \"pay cod\" — cash on delivery\n• \"pay upi\" — UPI transfer\nAfter paying by UPI, send \"paid <transaction reference>\"."
}

func replyPaymentHelp() string {
	return "To pay: send \"pay cod\" for cash on delivery or \"pay upi\" for UPI. Once the UPI transfer is done, reply \"paid <transaction reference>\" and we'll mark your order as paid."
}

func replyUnknown() string {
	return "Sorry, I didn't quite get that 😅 Send \"help\" to see what I understand, or \"menu\" to browse items."
}

func replyNoPendingOrder() string {
	return "I couldn't find a pending order for you. Send \"menu\" to start one!"
}

func (d *Dispatcher) renderMenu(items []*entity.MenuItem) string {
	if len(items) == 0 {
		return "Our menu is being updated right now — please check back in a bit!"
	}
	var b strings.Builder
	b.WriteString("🍽 Today's menu:\n")
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s — %s", i+1, it.Name, d.money(it.Price))
		if it.Description != "" {
			fmt.Fprintf(&b, " (%s)", it.Description)
		}
		b.WriteByte('\n')
	}
	b.WriteString("\nOrder with e.g. \"order 2 " + strings.ToLower(items[0].Name) + "\".")
	return b.String()
}

func (d *Dispatcher) renderSearchResults(term string, items []*entity.MenuItem) string {
	if len(items) == 0 {
		return fmt.Sprintf("No items matching \"%s\" right now. Send \"menu\" to see everything available.", term)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d item(s) for \"%s\":\n", len(items), term)
	for _, it := range items {
		fmt.Fprintf(&b, "• %s — %s\n", it.Name, d.money(it.Price))
	}
	b.WriteString("\nOrder with e.g. \"order 1 " + strings.ToLower(items[0].Name) + "\".")
	return b.String()
}

func (d *Dispatcher) renderOrderConfirmation(order *entity.Order, dropped int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order confirmed ✅ (ref %s)\n", order.ShortCode())
	for _, it := range order.Items {
		fmt.Fprintf(&b, "• %d × %s — %s\n", it.Quantity, it.Name, d.money(it.LineTotal))
	}
	fmt.Fprintf(&b, "Total: %s\nDelivery to: %s\n", d.money(order.Total), order.DeliveryLocation)
	if dropped > 0 {
		fmt.Fprintf(&b, "⚠️ %d item(s) in your message weren't on the menu and were skipped.\n", dropped)
	}
	b.WriteString("Choose payment with \"pay cod\" or \"pay upi\".")
	return b.String()
}

func (d *Dispatcher) renderRecentOrders(orders []*entity.Order) string {
	if len(orders) == 0 {
		return "You don't have any orders yet. Send \"menu\" to place your first one!"
	}
	var b strings.Builder
	b.WriteString("Your recent orders:\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "• %s — %s, %s, payment %s\n",
			o.ShortCode(), d.money(o.Total), o.Status, o.PaymentStatus)
	}
	return b.String()
}

func (d *Dispatcher) renderOwnerOrders(filter string, orders []*entity.Order) string {
	if len(orders) == 0 {
		return fmt.Sprintf("No orders (%s).", filter)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Orders (%s):\n", filter)
	for _, o := range orders {
		fmt.Fprintf(&b, "• %s — %s — %s — %s/%s — %s\n",
			o.ShortCode(), o.CustomerName, d.money(o.Total), o.Status, o.PaymentStatus, o.Phone)
	}
	b.WriteString("\nUse \"complete <ref>\" or \"cancel order <ref>\".")
	return b.String()
}

func (d *Dispatcher) renderStats(s *dto.OrderStatsResponse) string {
	return fmt.Sprintf(
		"📊 Summary\nToday: %d orders, revenue %s%s\nPending: %d | Completed: %d | Cancelled: %d\nPaid: %d | Total all-time: %d",
		s.TodayOrders, d.currency, s.TodayRevenue,
		s.PendingOrders, s.CompletedOrders, s.CancelledOrders,
		s.PaidOrders, s.TotalOrders,
	)
}

func replyMenuManage() string {
	return strings.Join([]string{
		"Menu management:",
		"• \"add item <name> <price> [description]\"",
		"• \"edit item <id-or-name> price <number>\"",
		"• \"edit item <id-or-name> name <new name>\"",
		"• \"toggle item <id-or-name>\" — flip availability",
		"• \"delete item <id-or-name>\"",
	}, "\n")
}

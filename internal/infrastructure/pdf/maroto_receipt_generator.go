// Package pdf implementa la generación del recibo imprimible de un pedido.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Ref del pedido + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + teléfono + dirección de entrega          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Ítem | P.Unit | Subtotal                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + estado de pago (método / referencia)               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

var _ usecase.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 58}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa usecase.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	_ context.Context,
	order *entity.Order,
	businessName, currency string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de pedido", true).
		WithAuthor(businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, businessName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(itemsHeaderRow())
	for _, it := range order.Items {
		m.AddRows(itemRow(it, currency))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRow(order, currency))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(order *entity.Order, businessName string) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
			text.New("Pedido por WhatsApp", props.Text{
				Top: 7, Size: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Recibo %s", order.ShortCode()), props.Text{
				Size: 11, Style: fontstyle.Bold, Align: align.Right,
			}),
			text.New(order.CreatedAt.Format("2006-01-02 15:04"), props.Text{
				Top: 6, Size: 8, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func customerRow(order *entity.Order) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Cliente: %s (%s)", order.CustomerName, order.Phone), props.Text{Size: 9}),
			text.New(fmt.Sprintf("Entrega: %s", order.DeliveryLocation), props.Text{Top: 5, Size: 9}),
		),
	)
}

func itemsHeaderRow() core.Row {
	bold := props.Text{Size: 9, Style: fontstyle.Bold}
	boldRight := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	return row.New(6).Add(
		col.New(2).Add(text.New("Cant.", bold)),
		col.New(6).Add(text.New("Ítem", bold)),
		col.New(2).Add(text.New("P. Unit", boldRight)),
		col.New(2).Add(text.New("Subtotal", boldRight)),
	)
}

func itemRow(it entity.OrderItem, currency string) core.Row {
	normal := props.Text{Size: 9}
	right := props.Text{Size: 9, Align: align.Right}
	return row.New(5).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), normal)),
		col.New(6).Add(text.New(it.Name, normal)),
		col.New(2).Add(text.New(currency+it.UnitPrice.StringFixed(2), right)),
		col.New(2).Add(text.New(currency+it.LineTotal.StringFixed(2), right)),
	)
}

func totalsRow(order *entity.Order, currency string) core.Row {
	payment := fmt.Sprintf("Pago: %s", order.PaymentStatus)
	if order.PaymentMethod != "" {
		payment += fmt.Sprintf(" (%s)", order.PaymentMethod)
	}
	if order.TransactionRef != "" {
		payment += fmt.Sprintf(" ref %s", order.TransactionRef)
	}
	return row.New(12).Add(
		col.New(7).Add(
			text.New(payment, props.Text{Size: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("TOTAL: %s%s", currency, order.Total.StringFixed(2)), props.Text{
				Size: 12, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary,
			}),
		),
	)
}

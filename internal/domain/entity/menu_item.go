package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem representa un plato o producto del menú del negocio.
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta por unidad
	Available   bool            // los no disponibles no aparecen en búsquedas ni en el menú
	Position    int             // orden estable de presentación en el menú
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

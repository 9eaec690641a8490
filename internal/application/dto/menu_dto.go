package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMenuItemRequest alta de un ítem del menú.
type CreateMenuItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Position    int             `json:"position"`
}

// UpdateMenuItemRequest actualización parcial de un ítem.
type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Available   *bool            `json:"available"`
	Position    *int             `json:"position"`
}

// MenuItemResponse ítem del menú para el dashboard.
type MenuItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
	Position    int             `json:"position"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MenuItemListResponse listado paginado de ítems.
type MenuItemListResponse struct {
	Items []MenuItemResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

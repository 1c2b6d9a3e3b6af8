package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a line item on an order. Unit price and subtotal are
// snapshots captured at order time and never follow later menu edits.
type OrderItem struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	OrderID             uuid.UUID       `json:"order_id" db:"order_id"`
	MenuItemID          uuid.UUID       `json:"menu_item_id" db:"menu_item_id"`
	MenuItemName        string          `json:"menu_item_name" db:"menu_item_name"`
	Quantity            int             `json:"quantity" db:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price" db:"unit_price"`
	Subtotal            decimal.Decimal `json:"subtotal" db:"subtotal"`
	SpecialInstructions *string         `json:"special_instructions,omitempty" db:"special_instructions"`
}

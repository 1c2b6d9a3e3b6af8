package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks stock of an ingredient at a restaurant
type InventoryItem struct {
	ID                uuid.UUID `json:"id" db:"id"`
	RestaurantID      uuid.UUID `json:"restaurant_id" db:"restaurant_id"`
	Name              string    `json:"name" db:"name"`
	Unit              string    `json:"unit" db:"unit"`
	Quantity          int       `json:"quantity" db:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold" db:"low_stock_threshold"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Table is a physical table at a restaurant. IsAvailable is an
// operator-controlled flag independent of reservation state: a closed
// table cannot be booked even when no reservations overlap it.
type Table struct {
	ID           uuid.UUID `json:"id" db:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id" db:"restaurant_id"`
	TableNumber  string    `json:"table_number" db:"table_number"`
	Capacity     int       `json:"capacity" db:"capacity"`
	IsAvailable  bool      `json:"is_available" db:"is_available"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a venue on the platform. Orders and reservations
// reference restaurants; OwnerID is the operator account that
// receives owner-side notifications.
type Restaurant struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	Address     *string   `json:"address,omitempty" db:"address"`
	ImageObject *string   `json:"image_object,omitempty" db:"image_object"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Role constants carried in JWT claims. Identity management itself is
// external; users are read here only for notification addressing.
const (
	RoleCustomer        = "CUSTOMER"
	RoleRestaurantOwner = "RESTAURANT_OWNER"
	RoleStaff           = "STAFF"
	RoleAdmin           = "ADMIN"
)

type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

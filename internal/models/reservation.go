package models

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationSeated    ReservationStatus = "SEATED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

// IsTerminal reports whether no further transitions are allowed
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled || s == ReservationNoShow
}

// Reservation is a table booking. TableID is a weak reference: freeing
// or deleting the table clears the reference, never the reservation.
type Reservation struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	UserID            uuid.UUID         `json:"user_id" db:"user_id"`
	RestaurantID      uuid.UUID         `json:"restaurant_id" db:"restaurant_id"`
	TableID           *uuid.UUID        `json:"table_id,omitempty" db:"table_id"`
	ReservationNumber string            `json:"reservation_number" db:"reservation_number"`
	GuestCount        int               `json:"guest_count" db:"guest_count"`
	StartsAt          time.Time         `json:"starts_at" db:"starts_at"`
	Status            ReservationStatus `json:"status" db:"status"`
	SpecialRequests   *string           `json:"special_requests,omitempty" db:"special_requests"`
	ReminderSent      bool              `json:"reminder_sent" db:"reminder_sent"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

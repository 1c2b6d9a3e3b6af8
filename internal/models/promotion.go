package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType represents how a promotion discounts an order
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// Promotion is a promo code. A nil RestaurantID means platform-wide;
// a nil MaxUses means unlimited. Codes are stored uppercase and matched
// case-insensitively.
type Promotion struct {
	ID                 uuid.UUID        `json:"id" db:"id"`
	RestaurantID       *uuid.UUID       `json:"restaurant_id,omitempty" db:"restaurant_id"`
	Code               string           `json:"code" db:"code"`
	Name               string           `json:"name" db:"name"`
	Description        *string          `json:"description,omitempty" db:"description"`
	DiscountType       DiscountType     `json:"discount_type" db:"discount_type"`
	DiscountValue      decimal.Decimal  `json:"discount_value" db:"discount_value"`
	MaxDiscount        *decimal.Decimal `json:"max_discount,omitempty" db:"max_discount"`
	MinimumOrderAmount decimal.Decimal  `json:"minimum_order_amount" db:"minimum_order_amount"`
	StartDate          time.Time        `json:"start_date" db:"start_date"`
	EndDate            time.Time        `json:"end_date" db:"end_date"`
	MaxUses            *int             `json:"max_uses,omitempty" db:"max_uses"`
	CurrentUses        int              `json:"current_uses" db:"current_uses"`
	IsActive           bool             `json:"is_active" db:"is_active"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at" db:"updated_at"`
}

// IsUsableAt reports whether the promotion is active, inside its
// validity window and under its usage cap at the given instant.
func (p *Promotion) IsUsableAt(at time.Time) bool {
	if !p.IsActive {
		return false
	}
	if at.Before(p.StartDate) || at.After(p.EndDate) {
		return false
	}
	if p.MaxUses != nil && p.CurrentUses >= *p.MaxUses {
		return false
	}
	return true
}

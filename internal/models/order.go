package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderPending        OrderStatus = "PENDING"
	OrderConfirmed      OrderStatus = "CONFIRMED"
	OrderPreparing      OrderStatus = "PREPARING"
	OrderReady          OrderStatus = "READY"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCompleted      OrderStatus = "COMPLETED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

// OrderType represents how the order is fulfilled
type OrderType string

const (
	OrderTypeDelivery OrderType = "DELIVERY"
	OrderTypeTakeout  OrderType = "TAKEOUT"
	OrderTypeDineIn   OrderType = "DINE_IN"
)

// DeliveryAddress is the structured address attached to delivery orders
type DeliveryAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Notes   string `json:"notes,omitempty"`
}

type Order struct {
	ID                    uuid.UUID        `json:"id" db:"id"`
	UserID                uuid.UUID        `json:"user_id" db:"user_id"`
	RestaurantID          uuid.UUID        `json:"restaurant_id" db:"restaurant_id"`
	OrderNumber           string           `json:"order_number" db:"order_number"`
	OrderType             OrderType        `json:"order_type" db:"order_type"`
	Status                OrderStatus      `json:"status" db:"status"`
	Subtotal              decimal.Decimal  `json:"subtotal" db:"subtotal"`
	Tax                   decimal.Decimal  `json:"tax" db:"tax"`
	DeliveryFee           decimal.Decimal  `json:"delivery_fee" db:"delivery_fee"`
	Discount              decimal.Decimal  `json:"discount" db:"discount"`
	Total                 decimal.Decimal  `json:"total" db:"total"`
	DeliveryAddress       *DeliveryAddress `json:"delivery_address,omitempty" db:"delivery_address"`
	DeliveryInstructions  *string          `json:"delivery_instructions,omitempty" db:"delivery_instructions"`
	EstimatedDeliveryTime *time.Time       `json:"estimated_delivery_time" db:"estimated_delivery_time"`
	ActualDeliveryTime    *time.Time       `json:"actual_delivery_time" db:"actual_delivery_time"`
	CreatedAt             time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at" db:"updated_at"`
}

// RecomputeTotal restores the pricing invariant
// total = subtotal + tax + delivery_fee - discount, floored at zero.
func (o *Order) RecomputeTotal() {
	total := o.Subtotal.Add(o.Tax).Add(o.DeliveryFee).Sub(o.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	o.Total = total
}

// OrderStatusChain is the forward progression used for order tracking
var OrderStatusChain = []OrderStatus{
	OrderPending,
	OrderConfirmed,
	OrderPreparing,
	OrderReady,
	OrderOutForDelivery,
	OrderDelivered,
	OrderCompleted,
}

// OrderTracking is the customer-facing tracking view of an order
type OrderTracking struct {
	OrderID               uuid.UUID   `json:"order_id"`
	OrderNumber           string      `json:"order_number"`
	Status                OrderStatus `json:"status"`
	CurrentStep           int         `json:"current_step"`
	TotalSteps            int         `json:"total_steps"`
	EstimatedDeliveryTime *time.Time  `json:"estimated_delivery_time"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

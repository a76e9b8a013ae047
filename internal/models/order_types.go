package models

import (
	"database/sql"
	"time"
)

// Order statuses. Transitions only move forward and only through the
// explicit status mutation.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// nextStatus is the fixed next-step mapping per current status. Pending
// has no automatic next step (it resolves to paid or cancelled by an
// explicit choice); delivered and cancelled are terminal.
var nextStatus = map[string]string{
	StatusPaid:    StatusShipped,
	StatusShipped: StatusDelivered,
}

// NextStatus returns the single forward step for a status, if one exists.
func NextStatus(current string) (string, bool) {
	next, ok := nextStatus[current]
	return next, ok
}

// CanTransition reports whether an explicit status change is allowed.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusPaid || to == StatusCancelled
	case StatusPaid:
		return to == StatusShipped
	case StatusShipped:
		return to == StatusDelivered
	}
	return false
}

// Order is the model for the 'orders' table.
type Order struct {
	ID              int64          `json:"id" db:"id"`
	ProfileID       int64          `json:"profileId" db:"profile_id"`
	Status          string         `json:"status" db:"status"`
	TotalAmount     float64        `json:"totalAmount" db:"total_amount"`
	PaymentMethod   string         `json:"paymentMethod" db:"payment_method"`
	ShippingAddress string         `json:"shippingAddress" db:"shipping_address"`
	ShippingCost    float64        `json:"shippingCost" db:"shipping_cost"`
	AdminFee        float64        `json:"adminFee" db:"admin_fee"`
	TrackingNumber  sql.NullString `json:"trackingNumber,omitempty" db:"tracking_number"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`

	// Joins (populated manually)
	CustomerName string      `json:"customerName,omitempty" db:"-"`
	Items        []OrderItem `json:"items,omitempty" db:"-"`
}

// OrderItem is the model for the 'order_items' table. Rows are
// immutable once created: the price is snapshotted at purchase time and
// never follows the variant's current price.
type OrderItem struct {
	ID              int64     `json:"id" db:"id"`
	OrderID         int64     `json:"orderId" db:"order_id"`
	VariantID       int64     `json:"variantId" db:"variant_id"`
	Quantity        int       `json:"quantity" db:"quantity"`
	PriceAtPurchase float64   `json:"priceAtPurchase" db:"price_at_purchase"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`

	// Joins (populated manually)
	ProductName string `json:"productName,omitempty" db:"-"`
	Color       string `json:"color,omitempty" db:"-"`
	Size        string `json:"size,omitempty" db:"-"`
}

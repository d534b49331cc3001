package domain

import "time"

// OrderStatus tracks fulfillment progress.
type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "ORDER_RECEIVED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Valid reports whether the status is a known value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusReceived, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the purchase header; items carry the per-product breakdown.
type Order struct {
	ID            string
	UserID        string
	Total         float64
	Status        OrderStatus
	PaymentMethod string
	Items         []OrderItem
	Customer      *User
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem is one purchased line. ProductName and UnitPrice are copied at
// purchase time so later catalog edits do not rewrite order history.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
	CreatedAt   time.Time
}

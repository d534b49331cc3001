package dto

import (
	"time"

	"github.com/Kryx404/gohealth/internal/domain"
)

// OrderItemRequest is one checkout line on the wire.
type OrderItemRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateOrderRequest payload for checkout.
type CreateOrderRequest struct {
	Total         float64            `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	Address       string             `json:"address"`
	IsCouponUsed  bool               `json:"isCouponUsed"`
	Coupon        string             `json:"coupon"`
	OrderItems    []OrderItemRequest `json:"orderItems"`
}

// UpdateOrderStatusRequest payload for admin status changes.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse is one purchased line on the wire.
type OrderItemResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderCustomer is the joined customer subset for admin listings.
type OrderCustomer struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// OrderResponse is one purchase on the wire.
type OrderResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	Total         float64             `json:"total"`
	Status        domain.OrderStatus  `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	Items         []OrderItemResponse `json:"items"`
	Customer      *OrderCustomer      `json:"customer,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OrderOf maps a domain order into the wire form.
func OrderOf(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	resp := OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Total:         o.Total,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if o.Customer != nil {
		resp.Customer = &OrderCustomer{
			ID:       o.Customer.ID,
			FullName: o.Customer.FullName,
			Email:    o.Customer.Email,
			Phone:    o.Customer.Phone,
		}
	}
	return resp
}

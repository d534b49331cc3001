package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Kryx404/gohealth/internal/domain"
	"github.com/Kryx404/gohealth/internal/events"
	"github.com/Kryx404/gohealth/internal/repository"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// OrderService coordinates checkout and order management.
type OrderService struct {
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, dispatcher: dispatcher}
}

// OrderItemInput is one checkout line.
type OrderItemInput struct {
	ProductID string
	Name      string
	Quantity  int
	Price     float64
}

// OrderInput carries the checkout payload. Address is required at checkout
// but lives on the user profile, not the order row, matching the source
// system.
type OrderInput struct {
	Total         float64
	PaymentMethod string
	Address       string
	Items         []OrderItemInput
}

// PlaceOrder validates and persists a new order, then announces it.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, input OrderInput) (*domain.Order, error) {
	if userID == "" || input.Total <= 0 || input.PaymentMethod == "" || input.Address == "" || len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("Missing required fields", nil)
	}

	order := &domain.Order{
		UserID:        userID,
		Total:         input.Total,
		Status:        domain.OrderStatusReceived,
		PaymentMethod: input.PaymentMethod,
		Items:         make([]domain.OrderItem, 0, len(input.Items)),
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, apperrors.NewValidationError("Invalid order item", nil)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Subtotal:    item.Price * float64(item.Quantity),
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, newEvent(events.EventOrderCreated, order.ID, events.OrderCreatedPayload{
			UserID:        order.UserID,
			Total:         order.Total,
			PaymentMethod: order.PaymentMethod,
			ItemCount:     len(order.Items),
		}))
	}
	return order, nil
}

// ListForUser returns the caller's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return orders, nil
}

// ListAll returns every order with customer details. Admin only.
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return orders, nil
}

// UpdateStatus moves an order to a new fulfillment status.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return apperrors.NewValidationError("Unknown order status", map[string]any{"status": string(status)})
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order", nil)
		}
		return apperrors.MapError(err)
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, newEvent(events.EventOrderStatusChanged, id, events.OrderStatusChangedPayload{
			OldStatus: order.Status,
			NewStatus: status,
		}))
	}
	return nil
}

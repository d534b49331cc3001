package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kryx404/gohealth/internal/domain"
	"github.com/Kryx404/gohealth/internal/events"
	"github.com/Kryx404/gohealth/internal/repository"
)

type fakeOrderRepo struct {
	orders  map[string]*domain.Order
	created []*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	order.ID = "order-1"
	f.created = append(f.created, order)
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) TotalRevenue(ctx context.Context) (float64, error) { return 0, nil }

func (f *fakeOrderRepo) DailyCounts(ctx context.Context, since time.Time) ([]repository.DailyOrderCount, error) {
	return nil, nil
}

func validOrderInput() OrderInput {
	return OrderInput{
		Total:         150000,
		PaymentMethod: "paypal",
		Address:       "Jl. Merdeka 10, Bandung",
		Items: []OrderItemInput{
			{ProductID: "p1", Name: "Vitamin C", Quantity: 2, Price: 50000},
			{ProductID: "p2", Name: "Zinc", Quantity: 1, Price: 50000},
		},
	}
}

func TestPlaceOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, events.NewInMemoryDispatcher())

	order, err := svc.PlaceOrder(context.Background(), "u1", validOrderInput())
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusReceived, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, float64(100000), order.Items[0].Subtotal)
	require.Len(t, repo.created, 1)
}

func TestPlaceOrderValidation(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		mutate func(*OrderInput)
	}{
		{"missing user", "", func(in *OrderInput) {}},
		{"zero total", "u1", func(in *OrderInput) { in.Total = 0 }},
		{"missing payment method", "u1", func(in *OrderInput) { in.PaymentMethod = "" }},
		{"missing address", "u1", func(in *OrderInput) { in.Address = "" }},
		{"no items", "u1", func(in *OrderInput) { in.Items = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validOrderInput()
			tt.mutate(&input)
			_, err := svc.PlaceOrder(ctx, tt.userID, input)
			require.Error(t, err)
			assert.Equal(t, "Missing required fields", err.Error())
		})
	}

	t.Run("item without product", func(t *testing.T) {
		input := validOrderInput()
		input.Items[0].ProductID = ""
		_, err := svc.PlaceOrder(ctx, "u1", input)
		assert.Error(t, err)
	})
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, events.NewInMemoryDispatcher())
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, "u1", validOrderInput())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, domain.OrderStatusProcessing))
	assert.Equal(t, domain.OrderStatusProcessing, repo.orders[order.ID].Status)

	assert.Error(t, svc.UpdateStatus(ctx, order.ID, domain.OrderStatus("TELEPORTED")))
	assert.Error(t, svc.UpdateStatus(ctx, "missing", domain.OrderStatusShipped))
}

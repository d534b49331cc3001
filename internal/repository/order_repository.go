package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kryx404/gohealth/internal/domain"
)

// DailyOrderCount is one point of the dashboard's orders-per-day series.
type DailyOrderCount struct {
	Day     time.Time
	Orders  int
	Revenue float64
}

// OrderRepository defines persistence access for purchases.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	Count(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	DailyCounts(ctx context.Context, since time.Time) ([]DailyOrderCount, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

// Create inserts the order header and its items in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const headerQuery = `
        INSERT INTO orders (user_id, total, status, payment_method)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, headerQuery,
		order.UserID,
		order.Total,
		order.Status,
		order.PaymentMethod,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	const itemQuery = `
        INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, subtotal)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRow(ctx, itemQuery,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
		).Scan(&item.ID, &item.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT id, user_id, total, status, payment_method, created_at, updated_at
        FROM orders WHERE id=$1`

	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Total,
		&order.Status,
		&order.PaymentMethod,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, []*domain.Order{&order}); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const query = `
        SELECT id, user_id, total, status, payment_method, created_at, updated_at
        FROM orders WHERE user_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows, false)
}

// ListAll returns every order with its customer, newest first. Admin only.
func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	const query = `
        SELECT o.id, o.user_id, o.total, o.status, o.payment_method, o.created_at, o.updated_at,
            u.id, u.full_name, u.email, u.phone
        FROM orders o
        JOIN users u ON u.id = o.user_id
        ORDER BY o.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows, true)
}

func (r *orderRepository) collect(ctx context.Context, rows pgx.Rows, withCustomer bool) ([]domain.Order, error) {
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		dest := []any{
			&order.ID,
			&order.UserID,
			&order.Total,
			&order.Status,
			&order.PaymentMethod,
			&order.CreatedAt,
			&order.UpdatedAt,
		}
		if withCustomer {
			order.Customer = &domain.User{}
			dest = append(dest,
				&order.Customer.ID,
				&order.Customer.FullName,
				&order.Customer.Email,
				&order.Customer.Phone,
			)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

func (r *orderRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> 'CANCELLED'`).Scan(&total)
	return total, err
}

func (r *orderRepository) DailyCounts(ctx context.Context, since time.Time) ([]DailyOrderCount, error) {
	const query = `
        SELECT DATE_TRUNC('day', created_at) AS day, COUNT(*), COALESCE(SUM(total), 0)
        FROM orders WHERE created_at >= $1
        GROUP BY day ORDER BY day`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]DailyOrderCount, 0)
	for rows.Next() {
		var point DailyOrderCount
		if err := rows.Scan(&point.Day, &point.Orders, &point.Revenue); err != nil {
			return nil, err
		}
		counts = append(counts, point)
	}
	return counts, rows.Err()
}

func (r *orderRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.pool.Query(ctx, `
        SELECT id, order_id, product_id, product_name, quantity, unit_price, subtotal, created_at
        FROM order_items WHERE order_id = ANY($1) ORDER BY created_at`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
			&item.CreatedAt,
		); err != nil {
			return err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

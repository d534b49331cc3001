package service

import (
	"context"
	"time"

	"github.com/Kryx404/gohealth/internal/repository"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// DashboardService aggregates the numbers behind the admin dashboard.
type DashboardService struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	products repository.ProductRepository
}

// NewDashboardService builds the service.
func NewDashboardService(orders repository.OrderRepository, users repository.UserRepository, products repository.ProductRepository) *DashboardService {
	return &DashboardService{orders: orders, users: users, products: products}
}

// DashboardSummary is everything the admin landing page shows.
type DashboardSummary struct {
	TotalOrders   int64
	TotalRevenue  float64
	TotalUsers    int64
	TotalProducts int64
	OrdersPerDay  []repository.DailyOrderCount
	BestSelling   []repository.BestSeller
}

// Summary computes dashboard totals, a 30-day orders series and the top
// five sellers.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	var err error
	if summary.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if summary.TotalRevenue, err = s.orders.TotalRevenue(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if summary.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if summary.TotalProducts, err = s.products.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}

	since := time.Now().AddDate(0, 0, -30)
	if summary.OrdersPerDay, err = s.orders.DailyCounts(ctx, since); err != nil {
		return nil, apperrors.MapError(err)
	}
	if summary.BestSelling, err = s.products.BestSelling(ctx, 5); err != nil {
		return nil, apperrors.MapError(err)
	}
	return summary, nil
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kryx404/gohealth/internal/api/dto"
	"github.com/Kryx404/gohealth/internal/service"
)

// DashboardHandler serves the admin dashboard aggregates.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboardService}
}

// Summary GET /api/admin/dashboard.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboard.Summary(c.Context())
	if err != nil {
		return err
	}

	days := make([]fiber.Map, 0, len(summary.OrdersPerDay))
	for _, point := range summary.OrdersPerDay {
		days = append(days, fiber.Map{
			"day":     point.Day.Format("2006-01-02"),
			"orders":  point.Orders,
			"revenue": point.Revenue,
		})
	}
	sellers := make([]fiber.Map, 0, len(summary.BestSelling))
	for i := range summary.BestSelling {
		sellers = append(sellers, fiber.Map{
			"product":  dto.ProductOf(&summary.BestSelling[i].Product),
			"qty_sold": summary.BestSelling[i].QtySold,
		})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"total_orders":   summary.TotalOrders,
		"total_revenue":  summary.TotalRevenue,
		"total_users":    summary.TotalUsers,
		"total_products": summary.TotalProducts,
		"orders_per_day": days,
		"best_selling":   sellers,
	}})
}

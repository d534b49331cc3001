package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Kryx404/gohealth/internal/api/dto"
	"github.com/Kryx404/gohealth/internal/auth"
	"github.com/Kryx404/gohealth/internal/domain"
	"github.com/Kryx404/gohealth/internal/service"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// OrdersHandler exposes checkout and order management.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// Create POST /api/orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	items := make([]service.OrderItemInput, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	order, err := h.orders.PlaceOrder(c.Context(), principal.User.ID, service.OrderInput{
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		Address:       req.Address,
		Items:         items,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.OrderOf(order)})
}

// ListOwn GET /api/orders.
func (h *OrdersHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	orders, err := h.orders.ListForUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponses(orders)})
}

// ListAll GET /api/orders/all. Admin only, enforced by route middleware.
func (h *OrdersHandler) ListAll(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orders": orderResponses(orders)})
}

// UpdateStatus PATCH /api/orders/:id. Admin only.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	if err := h.orders.UpdateStatus(c.Context(), c.Params("id"), domain.OrderStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

func orderResponses(orders []domain.Order) []dto.OrderResponse {
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, dto.OrderOf(&orders[i]))
	}
	return items
}

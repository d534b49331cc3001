package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kryx404/gohealth/internal/api/dto"
	"github.com/Kryx404/gohealth/internal/auth"
	"github.com/Kryx404/gohealth/internal/repository"
	"github.com/Kryx404/gohealth/internal/service"
)

// PagesHandler serves the data behind the guarded storefront pages. The
// route guard middleware has already run by the time these execute, so a
// request that lands here is allowed for its session.
type PagesHandler struct {
	catalog  *service.CatalogService
	orders   *service.OrderService
	sessions auth.SessionStore
}

// NewPagesHandler constructs handler.
func NewPagesHandler(catalog *service.CatalogService, orders *service.OrderService, sessions auth.SessionStore) *PagesHandler {
	return &PagesHandler{catalog: catalog, orders: orders, sessions: sessions}
}

// Home GET /: latest products and best sellers for the landing page.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	latest, err := h.catalog.ListProducts(c.Context(), repository.ProductFilter{OnlyActive: true, Limit: 8})
	if err != nil {
		return err
	}
	sellers, err := h.catalog.BestSelling(c.Context(), 4)
	if err != nil {
		return err
	}

	latestItems := make([]dto.ProductResponse, 0, len(latest))
	for i := range latest {
		latestItems = append(latestItems, dto.ProductOf(&latest[i]))
	}
	sellerItems := make([]fiber.Map, 0, len(sellers))
	for i := range sellers {
		sellerItems = append(sellerItems, fiber.Map{
			"product":  dto.ProductOf(&sellers[i].Product),
			"qty_sold": sellers[i].QtySold,
		})
	}
	return c.JSON(fiber.Map{"page": "home", "latest": latestItems, "best_selling": sellerItems})
}

// Shop GET /shop: the full active catalog with optional filters.
func (h *PagesHandler) Shop(c *fiber.Ctx) error {
	filter := repository.ProductFilter{OnlyActive: true}
	if categoryID := c.Query("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}

	products, err := h.catalog.ListProducts(c.Context(), filter)
	if err != nil {
		return err
	}
	categories, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, dto.ProductOf(&products[i]))
	}
	names := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		names = append(names, dto.CategoryOf(&categories[i]))
	}
	return c.JSON(fiber.Map{"page": "shop", "products": items, "categories": names})
}

// Product GET /product/:slug.
func (h *PagesHandler) Product(c *fiber.Ctx) error {
	product, err := h.catalog.GetProductBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"page": "product", "product": dto.ProductOf(product)})
}

// Cart GET /cart. Cart contents live on the client; the page itself only
// needs the session.
func (h *PagesHandler) Cart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "cart"})
}

// Orders GET /orders: the session user's order history.
func (h *PagesHandler) Orders(c *fiber.Ctx) error {
	identity, _ := h.sessions.Read(c)
	orders, err := h.orders.ListForUser(c.Context(), identity.ID)
	if err != nil {
		return err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, dto.OrderOf(&orders[i]))
	}
	return c.JSON(fiber.Map{"page": "orders", "orders": items})
}

// Pricing GET /pricing.
func (h *PagesHandler) Pricing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "pricing"})
}

// Login GET /login. A notice parameter left by a policy redirect is
// resolved to its message here; the client shows it once and strips the
// parameter.
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	resp := fiber.Map{"page": "login"}
	if notice := auth.Notice(c.Query(auth.NoticeParam)); notice != auth.NoticeNone {
		if msg := auth.NoticeMessage(notice); msg != "" {
			resp["notice"] = fiber.Map{"code": string(notice), "message": msg}
		}
	}
	return c.JSON(resp)
}

// Admin GET /admin. Reaching this handler means the guard saw an admin
// session.
func (h *PagesHandler) Admin(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "admin"})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Kryx404/gohealth/internal/api/dto"
	"github.com/Kryx404/gohealth/internal/repository"
	"github.com/Kryx404/gohealth/internal/service"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// ProductsHandler exposes the catalog: public reads and admin CRUD.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

// List GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{OnlyActive: true}
	if categoryID := c.Query("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	products, err := h.catalog.ListProducts(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, dto.ProductOf(&products[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/products/:slug.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.catalog.GetProductBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProductOf(product)})
}

// BestSelling GET /api/products/best-selling.
func (h *ProductsHandler) BestSelling(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	sellers, err := h.catalog.BestSelling(c.Context(), limit)
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(sellers))
	for i := range sellers {
		items = append(items, fiber.Map{
			"product":  dto.ProductOf(&sellers[i].Product),
			"qty_sold": sellers[i].QtySold,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// AdminGet GET /api/admin/products/:id.
func (h *ProductsHandler) AdminGet(c *fiber.Ctx) error {
	product, err := h.catalog.GetProductByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProductOf(product)})
}

// Create POST /api/admin/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	input, err := parseProductRequest(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.CreateProduct(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ProductOf(product)})
}

// Update PUT /api/admin/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	input, err := parseProductRequest(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.UpdateProduct(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProductOf(product)})
}

// Delete DELETE /api/admin/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

func parseProductRequest(c *fiber.Ctx) (service.ProductInput, error) {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ProductInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Price <= 0 || len(req.Images) == 0 {
		return service.ProductInput{}, apperrors.NewValidationError("title, price and at least one image required", nil)
	}
	images := make([]service.ImageInput, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, service.ImageInput{URL: img.URL, Alt: img.Alt})
	}
	return service.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Rating:      req.Rating,
		Category:    req.Category,
		Images:      images,
	}, nil
}

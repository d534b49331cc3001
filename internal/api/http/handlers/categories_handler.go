package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Kryx404/gohealth/internal/api/dto"
	"github.com/Kryx404/gohealth/internal/service"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// CategoriesHandler exposes category listing and admin management.
type CategoriesHandler struct {
	catalog *service.CatalogService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(catalog *service.CatalogService) *CategoriesHandler {
	return &CategoriesHandler{catalog: catalog}
}

// List GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, dto.CategoryOf(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /api/admin/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	name, err := parseCategoryName(c)
	if err != nil {
		return err
	}
	category, err := h.catalog.CreateCategory(c.Context(), name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CategoryOf(category)})
}

// Rename PUT /api/admin/categories/:id.
func (h *CategoriesHandler) Rename(c *fiber.Ctx) error {
	name, err := parseCategoryName(c)
	if err != nil {
		return err
	}
	if err := h.catalog.RenameCategory(c.Context(), c.Params("id"), name); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Delete DELETE /api/admin/categories/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

func parseCategoryName(c *fiber.Ctx) (string, error) {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return "", apperrors.NewValidationError("invalid payload", nil)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", apperrors.NewValidationError("name required", nil)
	}
	return name, nil
}

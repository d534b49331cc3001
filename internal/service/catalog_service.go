package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Kryx404/gohealth/internal/domain"
	"github.com/Kryx404/gohealth/internal/repository"
	apperrors "github.com/Kryx404/gohealth/pkg/util"
)

// CatalogService coordinates product and category management.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewCatalogService builds the service.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository) *CatalogService {
	return &CatalogService{products: products, categories: categories}
}

// ProductInput describes product create/update payloads.
type ProductInput struct {
	Title       string
	Description string
	Price       float64
	Stock       int
	Rating      float64
	Images      []ImageInput
	Category    string
}

// ImageInput defines one gallery image.
type ImageInput struct {
	URL string
	Alt string
}

// ListProducts returns active products for the shop, optionally filtered.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// GetProductBySlug loads one product for the public product page.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// GetProductByID loads one product for admin editing.
func (s *CatalogService) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// BestSelling returns the top products by sold quantity.
func (s *CatalogService) BestSelling(ctx context.Context, limit int) ([]repository.BestSeller, error) {
	if limit <= 0 {
		limit = 5
	}
	sellers, err := s.products.BestSelling(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return sellers, nil
}

// CreateProduct inserts a product with its images and category link. The
// slug is derived from the title.
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		Title:       input.Title,
		Slug:        Slugify(input.Title),
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Rating:      input.Rating,
		IsActive:    true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.applyRelations(ctx, product, input); err != nil {
		return nil, err
	}
	return s.GetProductByID(ctx, product.ID)
}

// UpdateProduct rewrites a product and its images and category link.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Title = input.Title
	product.Slug = Slugify(input.Title)
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.Rating = input.Rating
	if err := s.products.Update(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.applyRelations(ctx, product, input); err != nil {
		return nil, err
	}
	return s.GetProductByID(ctx, id)
}

// DeleteProduct removes a product; images and category links cascade.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

// CreateCategory adds a category with a unique name.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("Category already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	category := &domain.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// RenameCategory changes a category's name.
func (s *CatalogService) RenameCategory(ctx context.Context, id, name string) error {
	if err := s.categories.Rename(ctx, id, name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

// DeleteCategory removes a category; product links cascade.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *CatalogService) applyRelations(ctx context.Context, product *domain.Product, input ProductInput) error {
	images := make([]domain.ProductImage, 0, len(input.Images))
	for _, img := range input.Images {
		alt := img.Alt
		if alt == "" {
			alt = input.Title
		}
		images = append(images, domain.ProductImage{URL: img.URL, Alt: alt})
	}
	if err := s.products.ReplaceImages(ctx, product.ID, images); err != nil {
		return apperrors.MapError(err)
	}

	categoryIDs := []string{}
	if input.Category != "" {
		category, err := s.categories.GetByName(ctx, input.Category)
		if errors.Is(err, pgx.ErrNoRows) {
			category = &domain.Category{Name: input.Category}
			if err := s.categories.Create(ctx, category); err != nil {
				return apperrors.MapError(err)
			}
		} else if err != nil {
			return apperrors.MapError(err)
		}
		categoryIDs = append(categoryIDs, category.ID)
	}
	if err := s.products.ReplaceCategories(ctx, product.ID, categoryIDs); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a product title into its URL slug.
func Slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

package dto

import (
	"time"

	"github.com/Kryx404/gohealth/internal/domain"
)

// ProductImageDTO is one gallery entry on the wire.
type ProductImageDTO struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// ProductRequest payload for create/update.
type ProductRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Stock       int               `json:"stock"`
	Rating      float64           `json:"rating"`
	Category    string            `json:"category"`
	Images      []ProductImageDTO `json:"images"`
}

// ProductResponse is the catalog entry on the wire.
type ProductResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Stock       int               `json:"stock"`
	Rating      float64           `json:"rating"`
	IsActive    bool              `json:"is_active"`
	Images      []ProductImageDTO `json:"images"`
	Categories  []string          `json:"categories"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CategoryRequest payload for category create/rename.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse is a category on the wire.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductOf maps a domain product into the wire form.
func ProductOf(p *domain.Product) ProductResponse {
	images := make([]ProductImageDTO, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ProductImageDTO{URL: img.URL, Alt: img.Alt})
	}
	categories := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, c.Name)
	}
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Rating:      p.Rating,
		IsActive:    p.IsActive,
		Images:      images,
		Categories:  categories,
		CreatedAt:   p.CreatedAt,
	}
}

// CategoryOf maps a domain category into the wire form.
func CategoryOf(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

package domain

import "time"

// Product is the catalog entry shown in the shop.
type Product struct {
	ID          string
	Title       string
	Slug        string
	Description string
	Price       float64
	Stock       int
	Rating      float64
	IsActive    bool
	Images      []ProductImage
	Categories  []Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductImage is one gallery entry for a product, ordered by Position.
type ProductImage struct {
	ID        string
	ProductID string
	URL       string
	Alt       string
	Position  int
}

package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kryx404/gohealth/internal/domain"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	CategoryID *string
	Search     *string
	OnlyActive bool
	Limit      int
	Offset     int
}

// BestSeller pairs a product with its summed sold quantity.
type BestSeller struct {
	Product domain.Product
	QtySold int
}

// ProductRepository defines persistence access for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	BestSelling(ctx context.Context, limit int) ([]BestSeller, error)
	ReplaceImages(ctx context.Context, productID string, images []domain.ProductImage) error
	ReplaceCategories(ctx context.Context, productID string, categoryIDs []string) error
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (title, slug, description, price, stock, rating, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.Title,
		product.Slug,
		product.Description,
		product.Price,
		product.Stock,
		product.Rating,
		product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET title=$1, slug=$2, description=$3, price=$4, stock=$5,
            rating=$6, is_active=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		product.Title,
		product.Slug,
		product.Description,
		product.Price,
		product.Stock,
		product.Rating,
		product.IsActive,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	// images and category links cascade
	const query = `DELETE FROM products WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        SELECT id, title, slug, description, price, stock, rating, is_active, created_at, updated_at
        FROM products WHERE id=$1`
	return r.getOne(ctx, query, id)
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const query = `
        SELECT id, title, slug, description, price, stock, rating, is_active, created_at, updated_at
        FROM products WHERE slug=$1`
	return r.getOne(ctx, query, slug)
}

func (r *productRepository) getOne(ctx context.Context, query, arg string) (*domain.Product, error) {
	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&product.ID,
		&product.Title,
		&product.Slug,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.Rating,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := r.attachRelations(ctx, []*domain.Product{&product}); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	query := `
        SELECT DISTINCT p.id, p.title, p.slug, p.description, p.price, p.stock,
            p.rating, p.is_active, p.created_at, p.updated_at
        FROM products p`
	args := []any{}

	if filter.CategoryID != nil {
		query += ` JOIN product_categories pc ON pc.product_id = p.id`
	}
	query += ` WHERE 1=1`
	if filter.OnlyActive {
		query += ` AND p.is_active`
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += ` AND pc.category_id = $` + strconv.Itoa(len(args))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		query += ` AND p.title ILIKE $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY p.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Title,
			&product.Slug,
			&product.Description,
			&product.Price,
			&product.Stock,
			&product.Rating,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	if err := r.attachRelations(ctx, refs); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) BestSelling(ctx context.Context, limit int) ([]BestSeller, error) {
	const query = `
        SELECT p.id, p.title, p.slug, p.description, p.price, p.stock, p.rating,
            p.is_active, p.created_at, p.updated_at, SUM(oi.quantity) AS qty_sold
        FROM order_items oi
        JOIN products p ON p.id = oi.product_id
        GROUP BY p.id
        ORDER BY qty_sold DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sellers := make([]BestSeller, 0, limit)
	for rows.Next() {
		var bs BestSeller
		if err := rows.Scan(
			&bs.Product.ID,
			&bs.Product.Title,
			&bs.Product.Slug,
			&bs.Product.Description,
			&bs.Product.Price,
			&bs.Product.Stock,
			&bs.Product.Rating,
			&bs.Product.IsActive,
			&bs.Product.CreatedAt,
			&bs.Product.UpdatedAt,
			&bs.QtySold,
		); err != nil {
			return nil, err
		}
		sellers = append(sellers, bs)
	}
	return sellers, rows.Err()
}

func (r *productRepository) ReplaceImages(ctx context.Context, productID string, images []domain.ProductImage) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM product_images WHERE product_id=$1`, productID); err != nil {
		return err
	}
	for i, img := range images {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_images (product_id, url, alt, position) VALUES ($1, $2, $3, $4)`,
			productID, img.URL, img.Alt, i,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *productRepository) ReplaceCategories(ctx context.Context, productID string, categoryIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM product_categories WHERE product_id=$1`, productID); err != nil {
		return err
	}
	for _, categoryID := range categoryIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
			productID, categoryID,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// attachRelations loads images and categories for the given products.
func (r *productRepository) attachRelations(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Product, len(products))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	imgRows, err := r.pool.Query(ctx, `
        SELECT id, product_id, url, alt, position
        FROM product_images WHERE product_id = ANY($1) ORDER BY position`, ids)
	if err != nil {
		return err
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var img domain.ProductImage
		if err := imgRows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Alt, &img.Position); err != nil {
			return err
		}
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	if err := imgRows.Err(); err != nil {
		return err
	}

	catRows, err := r.pool.Query(ctx, `
        SELECT pc.product_id, c.id, c.name, c.created_at
        FROM product_categories pc
        JOIN categories c ON c.id = pc.category_id
        WHERE pc.product_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer catRows.Close()
	for catRows.Next() {
		var productID string
		var cat domain.Category
		if err := catRows.Scan(&productID, &cat.ID, &cat.Name, &cat.CreatedAt); err != nil {
			return err
		}
		if p, ok := byID[productID]; ok {
			p.Categories = append(p.Categories, cat)
		}
	}
	return catRows.Err()
}


package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const productColumns = "id, category_id, name, slug, description, price, stock, image_url, is_active, created_at"

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner, product *domain.Product) error {
	return row.Scan(
		&product.ID,
		&product.CategoryID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.ImageURL,
		&product.IsActive,
		&product.CreatedAt,
	)
}

func (r *postgresProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	conditions := []string{}
	args := []interface{}{}

	if !filter.IncludeInactive {
		conditions = append(conditions, "is_active = TRUE")
	}
	if filter.CategoryID != 0 {
		args = append(args, filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	switch filter.Sort {
	case domain.SortPriceAsc:
		query += " ORDER BY price ASC"
	case domain.SortPriceDesc:
		query += " ORDER BY price DESC"
	case domain.SortNewest:
		query += " ORDER BY created_at DESC"
	default:
		query += " ORDER BY id ASC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("Failed to list products (category: %d, search: %q): %v", filter.CategoryID, filter.Search, err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := scanProduct(rows, &product); err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

func (r *postgresProductRepository) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE slug = $1 AND is_active = TRUE"
	product := &domain.Product{}

	err := scanProduct(r.db.QueryRowContext(ctx, query, slug), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Active product with slug '%s' not found", slug)
			return nil, fmt.Errorf("product '%s': %w", slug, domain.ErrProductNotFound)
		}
		r.log.Errorf("Failed to get product by slug '%s': %v", slug, err)
		return nil, fmt.Errorf("could not get product by slug: %w", err)
	}
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1 AND is_active = TRUE"
	product := &domain.Product{}

	err := scanProduct(r.db.QueryRowContext(ctx, query, id), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Active product with ID %d not found", id)
			return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
		}
		r.log.Errorf("Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	return product, nil
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (category_id, name, slug, description, price, stock, image_url, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		product.CategoryID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Stock,
		product.ImageURL,
		product.IsActive,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				r.log.Warnf("Attempted to create product with duplicate slug '%s'", product.Slug)
				return nil, fmt.Errorf("product '%s': %w", product.Slug, domain.ErrProductExists)
			case "23503":
				r.log.Warnf("Attempted to create product under non-existent category ID %d", product.CategoryID)
				return nil, fmt.Errorf("category %d: %w", product.CategoryID, domain.ErrCategoryNotFound)
			case "23514":
				r.log.Warnf("Check constraint violation for product '%s': %s", product.Name, pqErr.Message)
				return nil, domain.NewValidationError(fmt.Sprintf("product data constraint violation: %s", pqErr.Message))
			}
		}
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Product created with ID: %d, Name: %s", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error) {
	setClauses := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.CategoryID != nil {
		add("category_id", *update.CategoryID)
	}
	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Slug != nil {
		add("slug", *update.Slug)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.Stock != nil {
		add("stock", *update.Stock)
	}
	if update.ImageURL != nil {
		add("image_url", *update.ImageURL)
	}
	if update.IsActive != nil {
		add("is_active", *update.IsActive)
	}

	if len(setClauses) == 0 {
		r.log.Warnf("No fields provided for product update ID %d, returning current row", id)
		return r.getProductAnyState(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(args), productColumns,
	)

	product := &domain.Product{}
	err := scanProduct(r.db.QueryRowContext(ctx, query, args...), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with ID %d not found for update", id)
			return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
		}
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				r.log.Warnf("Product update for ID %d collides with an existing slug", id)
				return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductExists)
			case "23503":
				r.log.Warnf("Attempted to move product ID %d to a non-existent category", id)
				return nil, fmt.Errorf("product %d: %w", id, domain.ErrCategoryNotFound)
			case "23514":
				r.log.Warnf("Check constraint violation for product update ID %d: %s", id, pqErr.Message)
				return nil, domain.NewValidationError(fmt.Sprintf("product data constraint violation: %s", pqErr.Message))
			}
		}
		r.log.Errorf("Failed to update product ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}
	r.log.Infof("Product updated with ID: %d", product.ID)
	return product, nil
}

// getProductAnyState fetches a product regardless of is_active; catalog
// management needs to see deactivated rows too.
func (r *postgresProductRepository) getProductAnyState(ctx context.Context, id int64) (*domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"
	product := &domain.Product{}

	err := scanProduct(r.db.QueryRowContext(ctx, query, id), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
		}
		r.log.Errorf("Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	return product, nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Cannot delete product ID %d: it appears on existing orders", id)
			return fmt.Errorf("product %d: %w", id, domain.ErrProductInUse)
		}
		r.log.Errorf("Failed to delete product ID %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting product ID %d: %v", id, err)
		return fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %d", id)
		return fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	r.log.Infof("Product deleted with ID: %d", id)
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
        SELECT id, name, slug
        FROM categories
        ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			r.log.Errorf("Failed to scan category row: %v", err)
			return nil, fmt.Errorf("error scanning category data: %w", err)
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during categories iteration: %v", err)
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (r *postgresCategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := `
        SELECT id, name, slug
        FROM categories
        WHERE slug = $1`
	category := &domain.Category{}

	err := r.db.QueryRowContext(ctx, query, slug).Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Category with slug '%s' not found", slug)
			return nil, fmt.Errorf("category '%s': %w", slug, domain.ErrCategoryNotFound)
		}
		r.log.Errorf("Failed to get category by slug '%s': %v", slug, err)
		return nil, fmt.Errorf("could not get category by slug: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
        INSERT INTO categories (name, slug)
        VALUES ($1, $2)
        RETURNING id`

	err := r.db.QueryRowContext(ctx, query, category.Name, category.Slug).Scan(&category.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Attempted to create duplicate category '%s' (slug '%s')", category.Name, category.Slug)
			return nil, fmt.Errorf("category '%s': %w", category.Name, domain.ErrCategoryExists)
		}
		r.log.Errorf("Failed to create category '%s': %v", category.Name, err)
		return nil, fmt.Errorf("could not create category: %w", err)
	}
	r.log.Infof("Category created with ID: %d, Name: %s", category.ID, category.Name)
	return category, nil
}

func (r *postgresCategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
        UPDATE categories
        SET name = $1, slug = $2
        WHERE id = $3
        RETURNING id, name, slug`
	updated := &domain.Category{}

	err := r.db.QueryRowContext(ctx, query, category.Name, category.Slug, category.ID).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Slug,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Category with ID %d not found for update", category.ID)
			return nil, fmt.Errorf("category %d: %w", category.ID, domain.ErrCategoryNotFound)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Category update for ID %d collides with an existing name or slug", category.ID)
			return nil, fmt.Errorf("category '%s': %w", category.Name, domain.ErrCategoryExists)
		}
		r.log.Errorf("Failed to update category ID %d: %v", category.ID, err)
		return nil, fmt.Errorf("could not update category: %w", err)
	}
	r.log.Infof("Category updated with ID: %d", updated.ID)
	return updated, nil
}

func (r *postgresCategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	// Products under the category go with it via ON DELETE CASCADE. The
	// cascade still trips the order_items RESTRICT when any of those
	// products was ever sold.
	query := `DELETE FROM categories WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Cannot delete category ID %d: its products appear on existing orders", id)
			return fmt.Errorf("category %d: %w", id, domain.ErrProductInUse)
		}
		r.log.Errorf("Failed to delete category ID %d: %v", id, err)
		return fmt.Errorf("could not delete category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting category ID %d: %v", id, err)
		return fmt.Errorf("could not confirm category deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent category ID %d", id)
		return fmt.Errorf("category %d: %w", id, domain.ErrCategoryNotFound)
	}
	r.log.Infof("Category deleted with ID: %d", id)
	return nil
}

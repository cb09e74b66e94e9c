package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	CategoryID  int64           `json:"category_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ProductSort string

const (
	SortDefault   ProductSort = ""
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortNewest    ProductSort = "new"
)

// ParseProductSort maps a query parameter to a sort order. Unknown values
// fall back to the default insertion order.
func ParseProductSort(s string) ProductSort {
	switch ProductSort(s) {
	case SortPriceAsc, SortPriceDesc, SortNewest:
		return ProductSort(s)
	default:
		return SortDefault
	}
}

// ProductFilter narrows a catalog listing. The zero value lists every active
// product in insertion order. IncludeInactive exists for catalog management;
// storefront listings never set it.
type ProductFilter struct {
	CategoryID      int64
	Search          string
	Sort            ProductSort
	IncludeInactive bool
}

// ProductUpdate carries an admin partial update; nil fields are left
// untouched.
type ProductUpdate struct {
	CategoryID  *int64
	Name        *string
	Slug        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	ImageURL    *string
	IsActive    *bool
}

// DecrementStock applies the soft stock decrement used at checkout: the
// result never goes below zero and the purchase never fails for lack of
// stock.
func DecrementStock(stock, qty int) int {
	if qty >= stock {
		return 0
	}
	return stock - qty
}

type ProductRepository interface {
	// ListProducts returns products matching the filter, active ones only
	// unless the filter says otherwise.
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	// GetProductBySlug resolves an active product; inactive or missing
	// products yield ErrProductNotFound.
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	// GetProductByID resolves an active product by id, same contract as
	// GetProductBySlug.
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, update ProductUpdate) (*Product, error)
	// DeleteProduct fails with ErrProductInUse while order items reference
	// the product.
	DeleteProduct(ctx context.Context, id int64) error
}

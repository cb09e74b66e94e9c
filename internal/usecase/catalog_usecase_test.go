package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
)

func catalogFixtures() (*fakeCategoryRepo, *fakeProductRepo) {
	categories := newFakeCategoryRepo(
		domain.Category{Name: "Electronics", Slug: "electronics"},
		domain.Category{Name: "Books", Slug: "books"},
	)
	products := newFakeProductRepo(
		domain.Product{CategoryID: 1, Name: "Phone", Slug: "phone", Price: mustDecimal("599.99"), Stock: 10, IsActive: true},
		domain.Product{CategoryID: 1, Name: "Laptop", Slug: "laptop", Price: mustDecimal("1299.00"), Stock: 3, IsActive: true},
		domain.Product{CategoryID: 2, Name: "Novel", Slug: "novel", Price: mustDecimal("9.50"), Stock: 40, IsActive: true},
		domain.Product{CategoryID: 2, Name: "Out of Print", Slug: "out-of-print", Price: mustDecimal("5.00"), Stock: 0, IsActive: false},
	)
	return categories, products
}

func TestCatalogListCategories(t *testing.T) {
	categories, products := catalogFixtures()
	uc := NewCatalogUseCase(categories, products, testLogger())

	got, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Books", got[0].Name)
	require.Equal(t, "Electronics", got[1].Name)
}

func TestCatalogListProducts_HidesInactive(t *testing.T) {
	categories, products := catalogFixtures()
	uc := NewCatalogUseCase(categories, products, testLogger())

	got, err := uc.ListProducts(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, p := range got {
		require.True(t, p.IsActive)
	}
	require.False(t, products.lastFilter.IncludeInactive)
}

func TestCatalogListProducts_ParsesSort(t *testing.T) {
	categories, products := catalogFixtures()
	uc := NewCatalogUseCase(categories, products, testLogger())

	_, err := uc.ListProducts(context.Background(), "phone", "price_desc")
	require.NoError(t, err)
	require.Equal(t, "phone", products.lastFilter.Search)
	require.Equal(t, domain.SortPriceDesc, products.lastFilter.Sort)

	_, err = uc.ListProducts(context.Background(), "", "bogus")
	require.NoError(t, err)
	require.Equal(t, domain.SortDefault, products.lastFilter.Sort)
}

func TestCatalogListProductsByCategory(t *testing.T) {
	categories, products := catalogFixtures()
	uc := NewCatalogUseCase(categories, products, testLogger())

	category, got, err := uc.ListProductsByCategory(context.Background(), "books", "", "")
	require.NoError(t, err)
	require.Equal(t, "Books", category.Name)
	require.Equal(t, category.ID, products.lastFilter.CategoryID)
	require.Len(t, got, 1)
	require.Equal(t, "Novel", got[0].Name)
}

func TestCatalogListProductsByCategory_UnknownSlug(t *testing.T) {
	categories, products := catalogFixtures()
	uc := NewCatalogUseCase(categories, products, testLogger())

	_, _, err := uc.ListProductsByCategory(context.Background(), "toys", "", "")
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCatalogGetProductBySlug(t *testing.T) {
	categories, products := catalogFixtures()
	uc := NewCatalogUseCase(categories, products, testLogger())

	p, err := uc.GetProductBySlug(context.Background(), "phone")
	require.NoError(t, err)
	require.Equal(t, "Phone", p.Name)

	_, err = uc.GetProductBySlug(context.Background(), "out-of-print")
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.GetProductBySlug(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

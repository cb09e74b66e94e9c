package delivery

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
)

func newCatalogRouter(stub *stubCatalog) *gin.Engine {
	router := gin.New()
	NewCatalogHandler(stub, testLogger()).RegisterRoutes(router)
	return router
}

func TestCatalogHandlerListProducts(t *testing.T) {
	stub := &stubCatalog{products: []domain.Product{{ID: 1, Name: "Phone"}}}
	router := newCatalogRouter(stub)

	w := performRequest(router, http.MethodGet, "/products?q=pho&sort=price_asc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	require.Equal(t, "Success", resp.Status)
	require.Equal(t, "pho", stub.lastSearch)
	require.Equal(t, "price_asc", stub.lastSort)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(resp.Data, &products))
	require.Len(t, products, 1)
	require.Equal(t, "Phone", products[0].Name)
}

func TestCatalogHandlerListCategories(t *testing.T) {
	stub := &stubCatalog{categories: []domain.Category{{ID: 1, Name: "Books", Slug: "books"}}}
	router := newCatalogRouter(stub)

	w := performRequest(router, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Success", decodeResponse(t, w).Status)
}

func TestCatalogHandlerCategoryListing(t *testing.T) {
	stub := &stubCatalog{
		category: &domain.Category{ID: 2, Name: "Books", Slug: "books"},
		products: []domain.Product{{ID: 3, Name: "Novel"}},
	}
	router := newCatalogRouter(stub)

	w := performRequest(router, http.MethodGet, "/categories/books/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data CategoryProductsResponse
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &data))
	require.Equal(t, "Books", data.Category.Name)
	require.Len(t, data.Products, 1)
}

func TestCatalogHandlerUnknownCategory(t *testing.T) {
	stub := &stubCatalog{err: fmt.Errorf("category 'toys': %w", domain.ErrCategoryNotFound)}
	router := newCatalogRouter(stub)

	w := performRequest(router, http.MethodGet, "/categories/toys/products", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Fail", decodeResponse(t, w).Status)
}

func TestCatalogHandlerProductNotFound(t *testing.T) {
	stub := &stubCatalog{err: fmt.Errorf("product 'ghost': %w", domain.ErrProductNotFound)}
	router := newCatalogRouter(stub)

	w := performRequest(router, http.MethodGet, "/products/ghost", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/MayankPandey2611/E-commerce-Application/internal/usecase"
)

type CatalogHandler struct {
	useCase usecase.CatalogUseCase
	log     *logrus.Logger
}

func NewCatalogHandler(uc usecase.CatalogUseCase, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:slug/products", h.ListProductsByCategory)
	}
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:slug", h.GetProductBySlug)
	}
}

// CategoryProductsResponse pairs a category with its product listing.
type CategoryProductsResponse struct {
	Category *domain.Category `json:"category"`
	Products []domain.Product `json:"products"`
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve categories: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", categories)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	search := c.Query("q")
	sort := c.Query("sort")

	products, err := h.useCase.ListProducts(c.Request.Context(), search, sort)
	if err != nil {
		h.log.Errorf("Failed to list products (search: %q): %v", search, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve products: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *CatalogHandler) ListProductsByCategory(c *gin.Context) {
	slug := c.Param("slug")
	search := c.Query("q")
	sort := c.Query("sort")

	category, products, err := h.useCase.ListProductsByCategory(c.Request.Context(), slug, search, sort)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		if statusCode >= http.StatusInternalServerError {
			h.log.Errorf("Failed to list products for category '%s': %v", slug, err)
		}
		ErrorResponse(c, statusCode, "Failed to retrieve products: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", CategoryProductsResponse{
		Category: category,
		Products: products,
	})
}

func (h *CatalogHandler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.useCase.GetProductBySlug(c.Request.Context(), slug)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		if statusCode >= http.StatusInternalServerError {
			h.log.Errorf("Failed to get product '%s': %v", slug, err)
		}
		ErrorResponse(c, statusCode, "Failed to retrieve product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
}

package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MayankPandey2611/E-commerce-Application/internal/middleware"
	"github.com/MayankPandey2611/E-commerce-Application/internal/usecase"
)

type CartHandler struct {
	useCase usecase.CartUseCase
	log     *logrus.Logger
}

func NewCartHandler(uc usecase.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.ViewCart)
		cart.POST("/items/:productID", h.AddItem)
		cart.PATCH("/items/:productID", h.UpdateItem)
		cart.DELETE("/items/:productID", h.RemoveItem)
	}
}

// UpdateItemRequest carries the exact quantity to set. Qty is a pointer so
// zero, which removes the line, still binds.
type UpdateItemRequest struct {
	Qty *int `json:"qty" binding:"required"`
}

func (h *CartHandler) ViewCart(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)

	view, err := h.useCase.ViewCart(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Errorf("Failed to view cart for session %s: %v", sessionID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve cart: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", view)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil || productID <= 0 {
		h.log.Warnf("Invalid product ID parameter for cart add: %s", c.Param("productID"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	view, err := h.useCase.AddToCart(c.Request.Context(), sessionID, productID)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		if statusCode >= http.StatusInternalServerError {
			h.log.Errorf("Failed to add product %d to cart (session %s): %v", productID, sessionID, err)
		} else {
			h.log.Warnf("Rejected add of product %d to cart (session %s): %v", productID, sessionID, err)
		}
		ErrorResponse(c, statusCode, "Failed to add item to cart: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Item added to cart", view)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil || productID <= 0 {
		h.log.Warnf("Invalid product ID parameter for cart update: %s", c.Param("productID"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for cart update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.useCase.UpdateQuantity(c.Request.Context(), sessionID, productID, *req.Qty)
	if err != nil {
		h.log.Errorf("Failed to update cart line %d (session %s): %v", productID, sessionID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update cart: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Cart updated", view)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil || productID <= 0 {
		h.log.Warnf("Invalid product ID parameter for cart removal: %s", c.Param("productID"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	view, err := h.useCase.RemoveFromCart(c.Request.Context(), sessionID, productID)
	if err != nil {
		h.log.Errorf("Failed to remove cart line %d (session %s): %v", productID, sessionID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update cart: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Item removed from cart", view)
}

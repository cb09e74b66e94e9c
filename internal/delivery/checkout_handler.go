package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/MayankPandey2611/E-commerce-Application/internal/middleware"
	"github.com/MayankPandey2611/E-commerce-Application/internal/usecase"
)

// CheckoutHandler serves the authenticated purchase flow: the prefilled
// checkout form, the checkout itself and the order-success lookup.
type CheckoutHandler struct {
	useCase usecase.CheckoutUseCase
	cart    usecase.CartUseCase
	auth    usecase.AuthUseCase
	log     *logrus.Logger
}

func NewCheckoutHandler(uc usecase.CheckoutUseCase, cart usecase.CartUseCase, auth usecase.AuthUseCase, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		useCase: uc,
		cart:    cart,
		auth:    auth,
		log:     logger,
	}
}

func (h *CheckoutHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/checkout", h.CheckoutForm)
	router.POST("/checkout", h.Checkout)
	router.GET("/orders/:id", h.GetOrder)
}

type CheckoutRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	City     string `json:"city" form:"city"`
	State    string `json:"state" form:"state"`
	Pincode  string `json:"pincode" form:"pincode"`
}

// CheckoutFormResponse carries the account-derived prefill plus the cart the
// order would be built from.
type CheckoutFormResponse struct {
	FullName string            `json:"full_name"`
	Email    string            `json:"email"`
	Cart     *usecase.CartView `json:"cart"`
}

func (h *CheckoutHandler) CheckoutForm(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)
	userID := c.GetInt64(middleware.UserIDKey)
	ctx := c.Request.Context()

	view, err := h.cart.ViewCart(ctx, sessionID)
	if err != nil {
		h.log.Errorf("Failed to load cart for checkout form (session %s): %v", sessionID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load checkout data: "+err.Error())
		return
	}
	if view.TotalQty == 0 {
		ErrorResponse(c, http.StatusBadRequest, "Your cart is empty.")
		return
	}

	user, err := h.auth.GetUser(ctx, userID)
	if err != nil {
		h.log.Errorf("Failed to load user %d for checkout form: %v", userID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load checkout data: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Checkout data retrieved successfully", CheckoutFormResponse{
		FullName: user.Username,
		Email:    user.Email,
		Cart:     view,
	})
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)
	userID := c.GetInt64(middleware.UserIDKey)

	var req CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warnf("Failed to bind checkout request (session %s): %v", sessionID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	contact := domain.ContactInfo{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Pincode:  req.Pincode,
	}

	order, err := h.useCase.Checkout(c.Request.Context(), sessionID, userID, contact)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		if statusCode >= http.StatusInternalServerError {
			h.log.Errorf("Checkout failed for user %d (session %s): %v", userID, sessionID, err)
		} else {
			h.log.Warnf("Checkout rejected for user %d (session %s): %v", userID, sessionID, err)
		}
		ErrorResponse(c, statusCode, "Checkout failed: "+err.Error())
		return
	}

	h.log.Infof("Order %d placed by user %d", order.ID, userID)
	SuccessResponse(c, http.StatusCreated, "Order placed successfully", order)
}

func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		h.log.Warnf("Invalid order ID parameter: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := h.useCase.GetOrderForUser(c.Request.Context(), orderID, userID)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		if statusCode >= http.StatusInternalServerError {
			h.log.Errorf("Failed to get order %d for user %d: %v", orderID, userID, err)
		}
		ErrorResponse(c, statusCode, "Failed to retrieve order: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Order retrieved successfully", order)
}

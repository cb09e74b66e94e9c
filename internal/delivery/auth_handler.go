package delivery

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/MayankPandey2611/E-commerce-Application/internal/middleware"
	"github.com/MayankPandey2611/E-commerce-Application/internal/usecase"
)

type AuthHandler struct {
	useCase    usecase.AuthUseCase
	sessions   domain.SessionStore
	sessionTTL time.Duration
	log        *logrus.Logger
}

func NewAuthHandler(uc usecase.AuthUseCase, sessions domain.SessionStore, sessionTTL time.Duration, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase:    uc,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		log:        logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

type RegisterRequest struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// LoginRequest takes a username or an email in the username field.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Register creates the account. It does not log the user in; the client is
// expected to follow up with a login call.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warnf("Failed to bind registration request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.useCase.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		if statusCode >= http.StatusInternalServerError {
			h.log.Errorf("Registration failed for '%s': %v", req.Username, err)
		}
		ErrorResponse(c, statusCode, "Registration failed: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Registration successful. Please log in.", user)
}

// Login authenticates and binds the user to a rotated session id. The old
// session's cart carries over, so anonymous shopping survives signing in.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warnf("Failed to bind login request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.useCase.Login(ctx, req.Username, req.Password)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		if statusCode >= http.StatusInternalServerError {
			h.log.Errorf("Login failed for '%s': %v", req.Username, err)
			ErrorResponse(c, statusCode, "Login failed")
			return
		}
		ErrorResponse(c, statusCode, "Invalid credentials")
		return
	}

	oldSessionID := c.GetString(middleware.SessionIDKey)
	var cart domain.Cart
	if old, err := h.sessions.GetSession(ctx, oldSessionID); err == nil {
		cart = old.Cart
	} else if !errors.Is(err, domain.ErrSessionNotFound) {
		h.log.Errorf("Failed to load session %s during login: %v", oldSessionID, err)
		ErrorResponse(c, http.StatusInternalServerError, "Login failed")
		return
	}

	userID := user.ID
	newSessionID := uuid.NewString()
	if err := h.sessions.SaveSession(ctx, &domain.Session{ID: newSessionID, UserID: &userID, Cart: cart}); err != nil {
		h.log.Errorf("Failed to save session for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "Login failed")
		return
	}
	if err := h.sessions.DeleteSession(ctx, oldSessionID); err != nil {
		h.log.Warnf("Failed to drop pre-login session %s: %v", oldSessionID, err)
	}

	middleware.SetSessionCookie(c, newSessionID, h.sessionTTL)
	c.Set(middleware.SessionIDKey, newSessionID)

	SuccessResponse(c, http.StatusOK, "Login successful", user)
}

// Logout discards the whole session, cart included, and expires the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)

	if err := h.sessions.DeleteSession(c.Request.Context(), sessionID); err != nil {
		h.log.Errorf("Failed to delete session %s on logout: %v", sessionID, err)
		ErrorResponse(c, http.StatusInternalServerError, "Logout failed")
		return
	}
	middleware.ClearSessionCookie(c)

	SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

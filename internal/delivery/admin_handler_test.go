package delivery

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/MayankPandey2611/E-commerce-Application/internal/middleware"
	"github.com/MayankPandey2611/E-commerce-Application/internal/repository"
)

func newAdminRouter(stub *stubAdmin, users map[int64]*domain.User, sessions domain.SessionStore) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Session(time.Hour, testLogger()))
	admin := router.Group("/admin")
	admin.Use(
		middleware.RequireAuth(sessions, testLogger()),
		middleware.RequireAdmin(&stubAuth{users: users}, testLogger()),
	)
	NewAdminHandler(stub, testLogger()).RegisterRoutes(admin)
	return router
}

func adminUsers() map[int64]*domain.User {
	return map[int64]*domain.User{
		1: {ID: 1, Username: "root", IsAdmin: true},
		8: {ID: 8, Username: "shopper"},
	}
}

func TestAdminHandlerRequiresAuth(t *testing.T) {
	sessions := repository.NewMemorySessionStore()
	router := newAdminRouter(&stubAdmin{}, adminUsers(), sessions)

	w := performRequest(router, http.MethodGet, "/admin/products", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Fail", decodeResponse(t, w).Status)
}

func TestAdminHandlerRejectsNonAdmin(t *testing.T) {
	sessions := repository.NewMemorySessionStore()
	router := newAdminRouter(&stubAdmin{}, adminUsers(), sessions)

	sessionID := loggedInSession(t, sessions, 8)
	w := performRequest(router, http.MethodGet, "/admin/products", nil, &http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Admin access required", decodeResponse(t, w).Message)
}

func TestAdminHandlerListProducts(t *testing.T) {
	sessions := repository.NewMemorySessionStore()
	stub := &stubAdmin{products: []domain.Product{
		{ID: 1, Name: "Widget", IsActive: true},
		{ID: 2, Name: "Retired Widget"},
	}}
	router := newAdminRouter(stub, adminUsers(), sessions)

	sessionID := loggedInSession(t, sessions, 1)
	w := performRequest(router, http.MethodGet, "/admin/products", nil, &http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	require.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &products))
	require.Len(t, products, 2)
	require.False(t, products[1].IsActive)
}

func TestAdminHandlerCreateCategory(t *testing.T) {
	sessions := repository.NewMemorySessionStore()
	stub := &stubAdmin{category: &domain.Category{ID: 3, Name: "Audio", Slug: "audio"}}
	router := newAdminRouter(stub, adminUsers(), sessions)

	sessionID := loggedInSession(t, sessions, 1)
	body := strings.NewReader(`{"name":"Audio","slug":"audio"}`)
	w := performRequest(router, http.MethodPost, "/admin/categories", body, &http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	require.Equal(t, http.StatusCreated, w.Code)

	var category domain.Category
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &category))
	require.Equal(t, "audio", category.Slug)
}

func TestAdminHandlerCreateCategoryConflict(t *testing.T) {
	sessions := repository.NewMemorySessionStore()
	stub := &stubAdmin{err: domain.ErrCategoryExists}
	router := newAdminRouter(stub, adminUsers(), sessions)

	sessionID := loggedInSession(t, sessions, 1)
	body := strings.NewReader(`{"name":"Audio","slug":"audio"}`)
	w := performRequest(router, http.MethodPost, "/admin/categories", body, &http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminHandlerCreateProduct(t *testing.T) {
	sessions := repository.NewMemorySessionStore()
	stub := &stubAdmin{product: &domain.Product{ID: 9, Name: "Headphones", Slug: "headphones", IsActive: true}}
	router := newAdminRouter(stub, adminUsers(), sessions)

	sessionID := loggedInSession(t, sessions, 1)
	body := strings.NewReader(`{"category_id":3,"name":"Headphones","slug":"headphones","price":"59.99","stock":10}`)
	w := performRequest(router, http.MethodPost, "/admin/products", body, &http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "Product created successfully", decodeResponse(t, w).Message)
}

func TestAdminHandlerPartialProductUpdate(t *testing.T) {
	sessions := repository.NewMemorySessionStore()
	stub := &stubAdmin{product: &domain.Product{ID: 5, Name: "Widget"}}
	router := newAdminRouter(stub, adminUsers(), sessions)

	sessionID := loggedInSession(t, sessions, 1)
	body := strings.NewReader(`{"price":"9.99","is_active":false}`)
	w := performRequest(router, http.MethodPatch, "/admin/products/5", body, &http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, stub.lastUpdate.Price)
	require.True(t, stub.lastUpdate.Price.Equal(decimal.RequireFromString("9.99")))
	require.NotNil(t, stub.lastUpdate.IsActive)
	require.False(t, *stub.lastUpdate.IsActive)
	require.Nil(t, stub.lastUpdate.Name)
	require.Nil(t, stub.lastUpdate.Stock)
}

func TestAdminHandlerUpdateRejectsEmptyBody(t *testing.T) {
	sessions := repository.NewMemorySessionStore()
	router := newAdminRouter(&stubAdmin{}, adminUsers(), sessions)

	sessionID := loggedInSession(t, sessions, 1)
	w := performRequest(router, http.MethodPatch, "/admin/products/5", strings.NewReader(`{}`), &http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid request body: no fields provided for update", decodeResponse(t, w).Message)
}

func TestAdminHandlerDeleteProductInUse(t *testing.T) {
	sessions := repository.NewMemorySessionStore()
	stub := &stubAdmin{err: domain.ErrProductInUse}
	router := newAdminRouter(stub, adminUsers(), sessions)

	sessionID := loggedInSession(t, sessions, 1)
	w := performRequest(router, http.MethodDelete, "/admin/products/2", nil, &http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, int64(2), stub.deletedID)
}

func TestAdminHandlerDeleteCategory(t *testing.T) {
	sessions := repository.NewMemorySessionStore()
	stub := &stubAdmin{}
	router := newAdminRouter(stub, adminUsers(), sessions)

	sessionID := loggedInSession(t, sessions, 1)
	w := performRequest(router, http.MethodDelete, "/admin/categories/3", nil, &http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(3), stub.deletedID)
}

func TestAdminHandlerRejectsBadIDs(t *testing.T) {
	sessions := repository.NewMemorySessionStore()
	router := newAdminRouter(&stubAdmin{}, adminUsers(), sessions)

	sessionID := loggedInSession(t, sessions, 1)
	cookie := &http.Cookie{Name: middleware.SessionCookie, Value: sessionID}

	w := performRequest(router, http.MethodPatch, "/admin/products/abc", strings.NewReader(`{"stock":1}`), cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodDelete, "/admin/categories/0", nil, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

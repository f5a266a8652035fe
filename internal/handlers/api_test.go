package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sallatna/sallatna-backend/internal/handlers"
	"github.com/sallatna/sallatna-backend/internal/logger"
	"github.com/sallatna/sallatna-backend/internal/middleware"
	"github.com/sallatna/sallatna-backend/internal/repos"
	"github.com/sallatna/sallatna-backend/internal/server"
	"github.com/sallatna/sallatna-backend/internal/services"
	"github.com/sallatna/sallatna-backend/internal/types"
)

var testDBCounter int64

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", n)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&types.User{},
		&types.Product{},
		&types.Order{},
		&types.OrderItem{},
		&types.Notification{},
	))

	log := logger.NewNop()
	userRepo := repos.NewUserRepo(gdb, log)
	productRepo := repos.NewProductRepo(gdb, log)
	orderRepo := repos.NewOrderRepo(gdb, log)
	orderItemRepo := repos.NewOrderItemRepo(gdb, log)
	notificationRepo := repos.NewNotificationRepo(gdb, log)

	authService := services.NewAuthService(gdb, log, userRepo, "test-secret", time.Hour)
	viewService := services.NewViewService(gdb, log, userRepo, productRepo, orderItemRepo)
	notifier := services.NewOrderNotifier(log, notificationRepo)
	productService := services.NewProductService(gdb, log, productRepo, viewService)
	orderService := services.NewOrderService(gdb, log, orderRepo, orderItemRepo, viewService, notifier)
	notificationService := services.NewNotificationService(gdb, log, notificationRepo)

	return server.NewRouter(server.RouterConfig{
		CORSOrigins:         []string{"http://localhost:3000"},
		AuthMiddleware:      middleware.NewAuthMiddleware(log, authService),
		AuthHandler:         handlers.NewAuthHandler(authService, "", false),
		ProductHandler:      handlers.NewProductHandler(productService),
		OrderHandler:        handlers.NewOrderHandler(orderService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookies(t *testing.T, w *httptest.ResponseRecorder) []*http.Cookie {
	t.Helper()
	res := w.Result()
	defer res.Body.Close()
	cookies := res.Cookies()
	require.NotEmpty(t, cookies, "expected a session cookie")
	return cookies
}

func register(t *testing.T, router *gin.Engine, username, role string) (map[string]any, []*http.Cookie) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"username": username,
		"password": "password",
		"role":     role,
		"name":     "Test " + username,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var user map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user, sessionCookies(t, w)
}

func TestRegisterLoginAndMe(t *testing.T) {
	router := newTestRouter(t)

	user, _ := register(t, router, "family1", "family")
	require.Equal(t, "family1", user["username"])
	_, hasPassword := user["password"]
	require.False(t, hasPassword, "password must never be serialized")

	// Duplicate username is rejected with a message.
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "family1",
		"password": "password",
		"role":     "family",
		"name":     "Again",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Username already exists")

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"username": "family1",
		"password": "password",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := sessionCookies(t, w)

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "family1")

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"username": "family1",
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductEndpoints(t *testing.T) {
	router := newTestRouter(t)

	_, familyCookies := register(t, router, "family1", "family")
	_, customerCookies := register(t, router, "customer1", "customer")

	// Customers cannot publish products.
	w := doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name":        "معمول تمر فاخر",
		"description": "هش ولذيذ",
		"price":       "45",
		"imageUrl":    "https://example.com/m.jpg",
	}, customerCookies)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name":        "معمول تمر فاخر",
		"description": "هش ولذيذ",
		"price":       "45",
		"imageUrl":    "https://example.com/m.jpg",
	}, familyCookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	// Listing is public and enriched with the owning family.
	w = doJSON(t, router, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	family, ok := listed[0]["family"].(map[string]any)
	require.True(t, ok, "product must carry its family")
	require.Equal(t, "family1", family["username"])

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/products/%v", product["id"]), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/products/999999", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderFlow(t *testing.T) {
	router := newTestRouter(t)

	familyUser, familyCookies := register(t, router, "family1", "family")
	_, otherFamilyCookies := register(t, router, "family2", "family")
	_, customerCookies := register(t, router, "customer1", "customer")

	w := doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name":        "كليجا قصيمية",
		"description": "محشوة بدبس التمر",
		"price":       "35",
		"imageUrl":    "https://example.com/k.jpg",
	}, familyCookies)
	require.Equal(t, http.StatusCreated, w.Code)
	var product map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	w = doJSON(t, router, http.MethodPost, "/api/orders", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Status in the body must be ignored; orders always start processing.
	w = doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"familyId":    familyUser["id"],
		"totalAmount": "70",
		"status":      "completed",
		"items": []gin.H{
			{"productId": product["id"], "quantity": 2, "price": "35"},
		},
	}, customerCookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	require.Equal(t, "processing", order["status"])

	// The customer sees the enriched order; the other family sees nothing.
	w = doJSON(t, router, http.MethodGet, "/api/orders", nil, customerCookies)
	require.Equal(t, http.StatusOK, w.Code)
	var customerOrders []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customerOrders))
	require.Len(t, customerOrders, 1)
	items := customerOrders[0]["items"].([]any)
	require.Len(t, items, 1)

	w = doJSON(t, router, http.MethodGet, "/api/orders", nil, otherFamilyCookies)
	require.Equal(t, http.StatusOK, w.Code)
	var otherOrders []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &otherOrders))
	require.Empty(t, otherOrders)

	orderPath := fmt.Sprintf("/api/orders/%v/status", order["id"])

	// Customers cannot transition orders at all.
	w = doJSON(t, router, http.MethodPatch, orderPath, gin.H{"status": "accepted"}, customerCookies)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// A family that does not own the order is refused.
	w = doJSON(t, router, http.MethodPatch, orderPath, gin.H{"status": "accepted"}, otherFamilyCookies)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPatch, orderPath, gin.H{"status": "accepted"}, familyCookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The customer was notified about the transition.
	w = doJSON(t, router, http.MethodGet, "/api/notifications", nil, customerCookies)
	require.Equal(t, http.StatusOK, w.Code)
	var notifications []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	message := notifications[0]["message"].(string)
	require.Contains(t, message, "مقبول")

	// Mark read twice; both succeed.
	readPath := fmt.Sprintf("/api/notifications/%v/read", notifications[0]["id"])
	w = doJSON(t, router, http.MethodPost, readPath, nil, customerCookies)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodPost, readPath, nil, customerCookies)
	require.Equal(t, http.StatusOK, w.Code)
	var read map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &read))
	require.Equal(t, true, read["isRead"])
}

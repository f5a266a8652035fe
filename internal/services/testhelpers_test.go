package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sallatna/sallatna-backend/internal/logger"
	"github.com/sallatna/sallatna-backend/internal/repos"
	"github.com/sallatna/sallatna-backend/internal/types"
)

var testDBCounter int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", n)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&types.User{},
		&types.Product{},
		&types.Order{},
		&types.OrderItem{},
		&types.Notification{},
	))
	return gdb
}

type testEnv struct {
	db               *gorm.DB
	log              *logger.Logger
	userRepo         repos.UserRepo
	productRepo      repos.ProductRepo
	orderRepo        repos.OrderRepo
	orderItemRepo    repos.OrderItemRepo
	notificationRepo repos.NotificationRepo
	viewService      ViewService
	notifier         OrderNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := openTestDB(t)
	log := logger.NewNop()
	env := &testEnv{
		db:               gdb,
		log:              log,
		userRepo:         repos.NewUserRepo(gdb, log),
		productRepo:      repos.NewProductRepo(gdb, log),
		orderRepo:        repos.NewOrderRepo(gdb, log),
		orderItemRepo:    repos.NewOrderItemRepo(gdb, log),
		notificationRepo: repos.NewNotificationRepo(gdb, log),
	}
	env.viewService = NewViewService(gdb, log, env.userRepo, env.productRepo, env.orderItemRepo)
	env.notifier = NewOrderNotifier(log, env.notificationRepo)
	return env
}

func (env *testEnv) createUser(t *testing.T, username, role string) *types.User {
	t.Helper()
	user := &types.User{
		Username: username,
		Password: "hashed-password",
		Role:     role,
		Name:     "Test " + username,
	}
	_, err := env.userRepo.Create(context.Background(), nil, []*types.User{user})
	require.NoError(t, err)
	return user
}

func (env *testEnv) createProduct(t *testing.T, familyID int64, name, price string) *types.Product {
	t.Helper()
	product := &types.Product{
		FamilyID:    familyID,
		Name:        name,
		Description: "description of " + name,
		Price:       price,
		ImageURL:    "https://example.com/" + name + ".jpg",
	}
	_, err := env.productRepo.Create(context.Background(), nil, []*types.Product{product})
	require.NoError(t, err)
	return product
}

package repos

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sallatna/sallatna-backend/internal/logger"
	"github.com/sallatna/sallatna-backend/internal/types"
)

var testDBCounter int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:repos_test_%d?mode=memory&cache=shared", n)
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

func TestUserRepoLookups(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewUserRepo(gdb, logger.NewNop())
	ctx := context.Background()

	user := &types.User{Username: "family1", Password: "x", Role: types.RoleFamily, Name: "n"}
	_, err := repo.Create(ctx, nil, []*types.User{user})
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	byName, err := repo.GetByUsername(ctx, nil, "family1")
	require.NoError(t, err)
	require.NotNil(t, byName)
	require.Equal(t, user.ID, byName.ID)

	missing, err := repo.GetByUsername(ctx, nil, "nobody")
	require.NoError(t, err)
	require.Nil(t, missing)

	missingByID, err := repo.GetByID(ctx, nil, 999999)
	require.NoError(t, err)
	require.Nil(t, missingByID)

	exists, err := repo.UsernameExists(ctx, nil, "family1")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.UsernameExists(ctx, nil, "nobody")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestNotificationRepoMarkRead(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewNotificationRepo(gdb, logger.NewNop())
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, &types.Notification{UserID: 1, Message: "m"})
	require.NoError(t, err)
	require.False(t, created.IsRead)

	read, err := repo.MarkRead(ctx, nil, created.ID)
	require.NoError(t, err)
	require.True(t, read.IsRead)

	again, err := repo.MarkRead(ctx, nil, created.ID)
	require.NoError(t, err)
	require.True(t, again.IsRead)

	missing, err := repo.MarkRead(ctx, nil, 999999)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestOrderRepoUpdateStatus(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewOrderRepo(gdb, logger.NewNop())
	ctx := context.Background()

	order := &types.Order{CustomerID: 1, FamilyID: 2, Status: types.OrderStatusProcessing, TotalAmount: "45"}
	_, err := repo.Create(ctx, nil, order)
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, nil, order.ID, "anything-goes")
	require.NoError(t, err)
	require.Equal(t, "anything-goes", updated.Status)

	missing, err := repo.UpdateStatus(ctx, nil, 999999, types.OrderStatusAccepted)
	require.NoError(t, err)
	require.Nil(t, missing)
}

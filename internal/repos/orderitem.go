package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/sallatna/sallatna-backend/internal/logger"
	"github.com/sallatna/sallatna-backend/internal/types"
)

type OrderItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.OrderItem) ([]*types.OrderItem, error)
	GetByOrderIDs(ctx context.Context, tx *gorm.DB, orderIDs []int64) ([]*types.OrderItem, error)
}

type orderItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderItemRepo(db *gorm.DB, baseLog *logger.Logger) OrderItemRepo {
	repoLog := baseLog.With("repo", "OrderItemRepo")
	return &orderItemRepo{db: db, log: repoLog}
}

func (r *orderItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.OrderItem) ([]*types.OrderItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(items) == 0 {
		return []*types.OrderItem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderItemRepo) GetByOrderIDs(ctx context.Context, tx *gorm.DB, orderIDs []int64) ([]*types.OrderItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.OrderItem
	if len(orderIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sallatna/sallatna-backend/internal/logger"
	"github.com/sallatna/sallatna-backend/internal/types"
)

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, order *types.Order) (*types.Order, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Order, error)
	GetByCustomerID(ctx context.Context, tx *gorm.DB, customerID int64) ([]*types.Order, error)
	GetByFamilyID(ctx context.Context, tx *gorm.DB, familyID int64) ([]*types.Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id int64, status string) (*types.Order, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, order *types.Order) (*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Order
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *orderRepo) GetByCustomerID(ctx context.Context, tx *gorm.DB, customerID int64) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Order
	if err := transaction.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *orderRepo) GetByFamilyID(ctx context.Context, tx *gorm.DB, familyID int64) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Order
	if err := transaction.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id int64, status string) (*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, tx, id)
}

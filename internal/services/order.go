package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sallatna/sallatna-backend/internal/logger"
	apperrors "github.com/sallatna/sallatna-backend/internal/pkg/errors"
	"github.com/sallatna/sallatna-backend/internal/repos"
	"github.com/sallatna/sallatna-backend/internal/types"
)

type CreateOrderItemInput struct {
	ProductID int64
	Quantity  int
	Price     string
}

type CreateOrderInput struct {
	FamilyID    int64
	TotalAmount string
	Items       []CreateOrderItemInput
}

type OrderService interface {
	CreateOrder(ctx context.Context, customerID int64, input CreateOrderInput) (*types.Order, error)
	UpdateOrderStatus(ctx context.Context, callerID, orderID int64, status string) (*types.Order, error)
	ListOrders(ctx context.Context, userID int64, role string) ([]*types.OrderWithDetails, error)
}

type orderService struct {
	db            *gorm.DB
	log           *logger.Logger
	orderRepo     repos.OrderRepo
	orderItemRepo repos.OrderItemRepo
	viewService   ViewService
	notifier      OrderNotifier
}

func NewOrderService(
	db *gorm.DB,
	log *logger.Logger,
	orderRepo repos.OrderRepo,
	orderItemRepo repos.OrderItemRepo,
	viewService ViewService,
	notifier OrderNotifier,
) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{
		db:            db,
		log:           serviceLog,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		viewService:   viewService,
		notifier:      notifier,
	}
}

// CreateOrder inserts the order row and all of its line items in one
// transaction. The status is always "processing" no matter what the caller
// sent, and the item prices are the caller-supplied snapshots.
func (os *orderService) CreateOrder(ctx context.Context, customerID int64, input CreateOrderInput) (*types.Order, error) {
	if vErr := validateCreateOrderInput(input); vErr != nil {
		return nil, vErr
	}

	order := &types.Order{
		CustomerID:  customerID,
		FamilyID:    input.FamilyID,
		Status:      types.OrderStatusProcessing,
		TotalAmount: input.TotalAmount,
	}

	txErr := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, oErr := os.orderRepo.Create(ctx, tx, order); oErr != nil {
			return fmt.Errorf("Failed to create order: %w", oErr)
		}

		items := make([]*types.OrderItem, 0, len(input.Items))
		for _, it := range input.Items {
			items = append(items, &types.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}
		if _, iErr := os.orderItemRepo.Create(ctx, tx, items); iErr != nil {
			return fmt.Errorf("Failed to create order items: %w", iErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// After the commit; a failed send never unwinds the order.
	os.notifier.OrderCreated(order)

	return order, nil
}

// UpdateOrderStatus persists the status verbatim. Only the family that owns
// the order may transition it; there is no transition graph beyond that.
func (os *orderService) UpdateOrderStatus(ctx context.Context, callerID, orderID int64, status string) (*types.Order, error) {
	if normalizeInputString(status) == "" {
		return nil, apperrors.New(apperrors.ErrInvalidArgument, "Status is required")
	}

	order, gErr := os.orderRepo.GetByID(ctx, nil, orderID)
	if gErr != nil {
		return nil, fmt.Errorf("Failed to load order: %w", gErr)
	}
	if order == nil {
		return nil, apperrors.New(apperrors.ErrNotFound, "Order not found")
	}
	if order.FamilyID != callerID {
		return nil, apperrors.New(apperrors.ErrForbidden, "Order belongs to another family")
	}

	updated, uErr := os.orderRepo.UpdateStatus(ctx, nil, orderID, status)
	if uErr != nil {
		return nil, fmt.Errorf("Failed to update order status: %w", uErr)
	}
	if updated == nil {
		return nil, apperrors.New(apperrors.ErrNotFound, "Order not found")
	}

	os.notifier.OrderStatusChanged(updated)

	return updated, nil
}

func (os *orderService) ListOrders(ctx context.Context, userID int64, role string) ([]*types.OrderWithDetails, error) {
	var orders []*types.Order
	var err error
	if role == types.RoleCustomer {
		orders, err = os.orderRepo.GetByCustomerID(ctx, nil, userID)
	} else {
		orders, err = os.orderRepo.GetByFamilyID(ctx, nil, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to load orders: %w", err)
	}
	return os.viewService.OrdersWithDetails(ctx, orders)
}

func validateCreateOrderInput(input CreateOrderInput) error {
	if input.FamilyID <= 0 {
		return apperrors.New(apperrors.ErrInvalidArgument, "familyId must be a positive id")
	}
	if !isDecimalString(input.TotalAmount) {
		return apperrors.New(apperrors.ErrInvalidArgument, "totalAmount must be a decimal string")
	}
	if len(input.Items) == 0 {
		return apperrors.New(apperrors.ErrInvalidArgument, "Order must contain at least one item")
	}
	for _, it := range input.Items {
		if it.ProductID <= 0 {
			return apperrors.New(apperrors.ErrInvalidArgument, "productId must be a positive id")
		}
		if it.Quantity <= 0 {
			return apperrors.New(apperrors.ErrInvalidArgument, "quantity must be positive")
		}
		if !isDecimalString(it.Price) {
			return apperrors.New(apperrors.ErrInvalidArgument, "price must be a decimal string")
		}
	}
	return nil
}

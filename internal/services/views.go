package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/sallatna/sallatna-backend/internal/logger"
	apperrors "github.com/sallatna/sallatna-backend/internal/pkg/errors"
	"github.com/sallatna/sallatna-backend/internal/repos"
	"github.com/sallatna/sallatna-backend/internal/types"
)

// ViewService assembles the denormalized read models. Lookups are keyed maps
// bounded by the result set, not full-table scans.
type ViewService interface {
	ProductsWithFamily(ctx context.Context) ([]*types.ProductWithFamily, error)
	OrdersWithDetails(ctx context.Context, orders []*types.Order) ([]*types.OrderWithDetails, error)
}

type viewService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	productRepo   repos.ProductRepo
	orderItemRepo repos.OrderItemRepo
}

func NewViewService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	productRepo repos.ProductRepo,
	orderItemRepo repos.OrderItemRepo,
) ViewService {
	serviceLog := log.With("service", "ViewService")
	return &viewService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		productRepo:   productRepo,
		orderItemRepo: orderItemRepo,
	}
}

func (vs *viewService) ProductsWithFamily(ctx context.Context) ([]*types.ProductWithFamily, error) {
	products, pErr := vs.productRepo.GetAll(ctx, nil)
	if pErr != nil {
		return nil, fmt.Errorf("Failed to load products: %w", pErr)
	}

	familyIDs := make([]int64, 0, len(products))
	seen := make(map[int64]bool, len(products))
	for _, p := range products {
		if !seen[p.FamilyID] {
			seen[p.FamilyID] = true
			familyIDs = append(familyIDs, p.FamilyID)
		}
	}

	users, uErr := vs.userRepo.GetByIDs(ctx, nil, familyIDs)
	if uErr != nil {
		return nil, fmt.Errorf("Failed to load family users: %w", uErr)
	}

	return assembleProductsWithFamily(products, indexUsers(users)), nil
}

func (vs *viewService) OrdersWithDetails(ctx context.Context, orders []*types.Order) ([]*types.OrderWithDetails, error) {
	if len(orders) == 0 {
		return []*types.OrderWithDetails{}, nil
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	items, iErr := vs.orderItemRepo.GetByOrderIDs(ctx, nil, orderIDs)
	if iErr != nil {
		return nil, fmt.Errorf("Failed to load order items: %w", iErr)
	}

	productIDSet := make(map[int64]bool, len(items))
	productIDs := make([]int64, 0, len(items))
	for _, it := range items {
		if !productIDSet[it.ProductID] {
			productIDSet[it.ProductID] = true
			productIDs = append(productIDs, it.ProductID)
		}
	}
	userIDSet := make(map[int64]bool, len(orders)*2)
	userIDs := make([]int64, 0, len(orders)*2)
	for _, o := range orders {
		for _, id := range []int64{o.CustomerID, o.FamilyID} {
			if !userIDSet[id] {
				userIDSet[id] = true
				userIDs = append(userIDs, id)
			}
		}
	}

	var products []*types.Product
	var users []*types.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = vs.productRepo.GetByIDs(gctx, nil, productIDs)
		if err != nil {
			return fmt.Errorf("Failed to load products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = vs.userRepo.GetByIDs(gctx, nil, userIDs)
		if err != nil {
			return fmt.Errorf("Failed to load users: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return assembleOrdersWithDetails(orders, items, indexProducts(products), indexUsers(users))
}

func indexUsers(users []*types.User) map[int64]*types.User {
	byID := make(map[int64]*types.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID
}

func indexProducts(products []*types.Product) map[int64]*types.Product {
	byID := make(map[int64]*types.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}

func assembleProductsWithFamily(products []*types.Product, usersByID map[int64]*types.User) []*types.ProductWithFamily {
	out := make([]*types.ProductWithFamily, 0, len(products))
	for _, p := range products {
		out = append(out, &types.ProductWithFamily{
			Product: *p,
			Family:  usersByID[p.FamilyID],
		})
	}
	return out
}

// assembleOrdersWithDetails is a pure function of its snapshots. A line item
// whose product is gone, or an order whose customer/family user is gone, is an
// integrity violation rather than a null field in the response.
func assembleOrdersWithDetails(
	orders []*types.Order,
	items []*types.OrderItem,
	productsByID map[int64]*types.Product,
	usersByID map[int64]*types.User,
) ([]*types.OrderWithDetails, error) {
	itemsByOrderID := make(map[int64][]*types.OrderItem, len(orders))
	for _, it := range items {
		itemsByOrderID[it.OrderID] = append(itemsByOrderID[it.OrderID], it)
	}

	out := make([]*types.OrderWithDetails, 0, len(orders))
	for _, o := range orders {
		customer, ok := usersByID[o.CustomerID]
		if !ok {
			return nil, apperrors.New(apperrors.ErrIntegrity, fmt.Sprintf("order %d references missing customer %d", o.ID, o.CustomerID))
		}
		family, ok := usersByID[o.FamilyID]
		if !ok {
			return nil, apperrors.New(apperrors.ErrIntegrity, fmt.Sprintf("order %d references missing family %d", o.ID, o.FamilyID))
		}

		orderItems := make([]*types.OrderItemWithProduct, 0, len(itemsByOrderID[o.ID]))
		for _, it := range itemsByOrderID[o.ID] {
			product, ok := productsByID[it.ProductID]
			if !ok {
				return nil, apperrors.New(apperrors.ErrIntegrity, fmt.Sprintf("order item %d references missing product %d", it.ID, it.ProductID))
			}
			orderItems = append(orderItems, &types.OrderItemWithProduct{
				OrderItem: *it,
				Product:   product,
			})
		}

		out = append(out, &types.OrderWithDetails{
			Order:    *o,
			Items:    orderItems,
			Customer: customer,
			Family:   family,
		})
	}
	return out, nil
}

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

type CreateProductInput struct {
	Name        string
	Description string
	Price       string
	ImageURL    string
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]*types.ProductWithFamily, error)
	GetProduct(ctx context.Context, id int64) (*types.Product, error)
	CreateProduct(ctx context.Context, familyID int64, input CreateProductInput) (*types.Product, error)
}

type productService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	viewService ViewService
}

func NewProductService(
	db *gorm.DB,
	log *logger.Logger,
	productRepo repos.ProductRepo,
	viewService ViewService,
) ProductService {
	serviceLog := log.With("service", "ProductService")
	return &productService{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
		viewService: viewService,
	}
}

func (ps *productService) ListProducts(ctx context.Context) ([]*types.ProductWithFamily, error) {
	return ps.viewService.ProductsWithFamily(ctx)
}

func (ps *productService) GetProduct(ctx context.Context, id int64) (*types.Product, error) {
	product, err := ps.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("Failed to load product: %w", err)
	}
	if product == nil {
		return nil, apperrors.New(apperrors.ErrNotFound, "Product not found")
	}
	return product, nil
}

func (ps *productService) CreateProduct(ctx context.Context, familyID int64, input CreateProductInput) (*types.Product, error) {
	input.Name = normalizeInputString(input.Name)
	input.Description = normalizeInputString(input.Description)

	if input.Name == "" {
		return nil, apperrors.New(apperrors.ErrInvalidArgument, "Name is required")
	}
	if input.Description == "" {
		return nil, apperrors.New(apperrors.ErrInvalidArgument, "Description is required")
	}
	if !isDecimalString(input.Price) {
		return nil, apperrors.New(apperrors.ErrInvalidArgument, "price must be a decimal string")
	}

	product := &types.Product{
		FamilyID:    familyID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
	}
	if _, err := ps.productRepo.Create(ctx, nil, []*types.Product{product}); err != nil {
		return nil, fmt.Errorf("Failed to create product: %w", err)
	}
	return product, nil
}

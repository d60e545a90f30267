package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonthread/storefront-backend/pkg/db"
	"github.com/maisonthread/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonthread/storefront-backend/pkg/errors"
	"github.com/maisonthread/storefront-backend/pkg/pagination"
)

// Service exposes catalog browse and admin management operations.
type Service interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	ListProducts(ctx context.Context, filter ListFilter) (*ProductListResult, error)
	FeaturedProducts(ctx context.Context, limit int) ([]ProductDTO, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]CategoryDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Product, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	SaveProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	ReplaceCategories(ctx context.Context, product *models.Product, categoryIDs []uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService constructs the catalog service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "product not found")
	}
	dto := productFromModel(*product)
	return &dto, nil
}

func (s *service) GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, mapLookupErr(err, "product not found")
	}
	dto := productFromModel(*product)
	return &dto, nil
}

func (s *service) ListProducts(ctx context.Context, filter ListFilter) (*ProductListResult, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	keep, hasMore := pagination.TrimPage(len(rows), filter.Pagination.Limit)
	page := rows[:keep]

	products := make([]ProductDTO, 0, len(page))
	for _, p := range page {
		products = append(products, productFromModel(p))
	}

	result := &ProductListResult{Products: products}
	if hasMore && len(page) > 0 {
		last := page[len(page)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		result.NextCursor = &cursor
	}
	return result, nil
}

func (s *service) FeaturedProducts(ctx context.Context, limit int) ([]ProductDTO, error) {
	rows, err := s.repo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list featured products")
	}
	products := make([]ProductDTO, 0, len(rows))
	for _, p := range rows {
		products = append(products, productFromModel(p))
	}
	return products, nil
}

func (s *service) ListCategories(ctx context.Context, activeOnly bool) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	categories := make([]CategoryDTO, 0, len(rows))
	for _, c := range rows {
		categories = append(categories, categoryFromModel(c))
	}
	return categories, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateSalePrice(input.PriceCents, input.SalePriceCents); err != nil {
		return nil, err
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.StockQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}

	product := &models.Product{
		Name:           strings.TrimSpace(input.Name),
		Slug:           strings.TrimSpace(input.Slug),
		Description:    input.Description,
		SKU:            strings.TrimSpace(input.SKU),
		PriceCents:     input.PriceCents,
		SalePriceCents: input.SalePriceCents,
		StockQuantity:  input.StockQuantity,
		Sizes:          input.Sizes,
		Colors:         input.Colors,
		IsActive:       input.IsActive,
		IsFeatured:     input.IsFeatured,
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug or sku already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}

	if len(input.CategoryIDs) > 0 {
		if err := s.repo.ReplaceCategories(ctx, created, input.CategoryIDs); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bind categories")
		}
	}

	dto := productFromModel(*created)
	return &dto, nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapLookupErr(err, "product not found")
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.ClearSalePrice {
		product.SalePriceCents = nil
	} else if input.SalePriceCents != nil {
		product.SalePriceCents = input.SalePriceCents
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.Sizes != nil {
		product.Sizes = *input.Sizes
	}
	if input.Colors != nil {
		product.Colors = *input.Colors
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	if product.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if product.StockQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	if err := validateSalePrice(product.PriceCents, product.SalePriceCents); err != nil {
		return nil, err
	}

	saved, err := s.repo.SaveProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save product")
	}

	dto := productFromModel(*saved)
	return &dto, nil
}

func validateSalePrice(priceCents int, saleCents *int) error {
	if saleCents == nil {
		return nil
	}
	if *saleCents <= 0 || *saleCents > priceCents {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale price must be positive and at most the list price")
	}
	return nil
}

func mapLookupErr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "catalog lookup")
}

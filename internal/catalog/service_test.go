package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonthread/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonthread/storefront-backend/pkg/errors"
	"github.com/maisonthread/storefront-backend/pkg/pagination"
)

type stubCatalogRepo struct {
	products   map[uuid.UUID]*models.Product
	bySlug     map[string]*models.Product
	listRows   []models.Product
	categories []models.Category
	created    *models.Product
	saved      *models.Product
	createErr  error
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		products: map[uuid.UUID]*models.Product{},
		bySlug:   map[string]*models.Product{},
	}
}

func (s *stubCatalogRepo) add(p *models.Product) {
	s.products[p.ID] = p
	s.bySlug[p.Slug] = p
}

func (s *stubCatalogRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (s *stubCatalogRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p, ok := s.bySlug[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (s *stubCatalogRepo) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	return s.listRows, nil
}

func (s *stubCatalogRepo) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	return s.listRows, nil
}

func (s *stubCatalogRepo) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	return s.categories, nil
}

func (s *stubCatalogRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	product.ID = uuid.New()
	s.created = product
	s.add(product)
	return product, nil
}

func (s *stubCatalogRepo) SaveProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.saved = product
	return product, nil
}

func (s *stubCatalogRepo) ReplaceCategories(ctx context.Context, product *models.Product, categoryIDs []uuid.UUID) error {
	return nil
}

func TestServiceGetProductNotFound(t *testing.T) {
	svc, err := NewService(newStubCatalogRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.GetProduct(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not found")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceGetProductBySlug(t *testing.T) {
	repo := newStubCatalogRepo()
	sale := 3999
	repo.add(&models.Product{
		ID:             uuid.New(),
		Name:           "Denim Skinny Jeans",
		Slug:           "denim-skinny-jeans",
		PriceCents:     4999,
		SalePriceCents: &sale,
		IsActive:       true,
	})

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetProductBySlug(context.Background(), "denim-skinny-jeans")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if !dto.OnSale {
		t.Fatal("expected product to be on sale")
	}
	if dto.SalePriceCents == nil || *dto.SalePriceCents != 3999 {
		t.Fatalf("expected sale price preserved, got %v", dto.SalePriceCents)
	}
}

func TestServiceListProductsEmitsCursor(t *testing.T) {
	repo := newStubCatalogRepo()
	now := time.Now().UTC()
	// two rows back for a limit of one means a next page exists
	repo.listRows = []models.Product{
		{ID: uuid.New(), Name: "Newer", CreatedAt: now},
		{ID: uuid.New(), Name: "Older", CreatedAt: now.Add(-time.Hour)},
	}

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.ListProducts(context.Background(), ListFilter{
		ActiveOnly: true,
		Pagination: pagination.Params{Limit: 1},
	})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(result.Products) != 1 {
		t.Fatalf("expected one product, got %d", len(result.Products))
	}
	if result.Products[0].Name != "Newer" {
		t.Fatalf("expected newest first, got %s", result.Products[0].Name)
	}
	if result.NextCursor == nil {
		t.Fatal("expected next cursor")
	}

	cursor, err := pagination.ParseCursor(*result.NextCursor)
	if err != nil || cursor == nil {
		t.Fatalf("expected decodable cursor, got %v", err)
	}
	if cursor.ID != repo.listRows[0].ID {
		t.Fatalf("cursor should point at the last returned row")
	}
}

func TestServiceCreateProductRejectsBadSalePrice(t *testing.T) {
	svc, err := NewService(newStubCatalogRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	sale := 6000
	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		Name:           "Overpriced Sale",
		Slug:           "overpriced-sale",
		SKU:            "SKU-1",
		PriceCents:     4999,
		SalePriceCents: &sale,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestServiceUpdateProductClearsSalePrice(t *testing.T) {
	repo := newStubCatalogRepo()
	sale := 3999
	product := &models.Product{
		ID:             uuid.New(),
		Name:           "Denim Skinny Jeans",
		Slug:           "denim-skinny-jeans",
		PriceCents:     4999,
		SalePriceCents: &sale,
	}
	repo.add(product)

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.UpdateProduct(context.Background(), product.ID, UpdateProductInput{
		ClearSalePrice: true,
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if dto.SalePriceCents != nil {
		t.Fatalf("expected sale price cleared, got %v", dto.SalePriceCents)
	}
	if dto.OnSale {
		t.Fatal("expected on_sale false after clearing")
	}
}

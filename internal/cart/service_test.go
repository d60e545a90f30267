package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonthread/storefront-backend/internal/pricing"
	"github.com/maisonthread/storefront-backend/pkg/config"
	"github.com/maisonthread/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonthread/storefront-backend/pkg/errors"
)

type stubCartRepo struct {
	items     []models.CartItem
	upserted  *models.CartItem
	updated   int64
	deleted   int64
	deleteErr error
}

func (s *stubCartRepo) Upsert(ctx context.Context, item *models.CartItem) error {
	s.upserted = item
	return nil
}

func (s *stubCartRepo) FindOwned(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	for i := range s.items {
		if s.items[i].ID == itemID && s.items[i].UserID == userID {
			return &s.items[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.items, nil
}

func (s *stubCartRepo) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (int64, error) {
	return s.updated, nil
}

func (s *stubCartRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) (int64, error) {
	return s.deleted, s.deleteErr
}

type stubProductFinder struct {
	product *models.Product
}

func (s *stubProductFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

func buildCartService(t *testing.T, repo *stubCartRepo, product *models.Product) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:       repo,
		Products:   &stubProductFinder{product: product},
		Calculator: pricing.NewCalculator(config.CommerceConfig{TaxRateBasisPoints: 800}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceAddItemRejectsBadQuantity(t *testing.T) {
	svc := buildCartService(t, &stubCartRepo{}, nil)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductID: uuid.New(),
		Quantity:  0,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestServiceAddItemRejectsInactiveProduct(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Name: "Retired", PriceCents: 1000, StockQuantity: 5, IsActive: false}
	svc := buildCartService(t, &stubCartRepo{}, product)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductID: product.ID,
		Quantity:  1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for inactive product, got %v", err)
	}
}

func TestServiceAddItemRejectsOutOfStock(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Name: "Sold Out", PriceCents: 1000, StockQuantity: 0, IsActive: true}
	svc := buildCartService(t, &stubCartRepo{}, product)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductID: product.ID,
		Quantity:  1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for out of stock, got %v", err)
	}
}

func TestServiceAddItemUpserts(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Name: "Tee", PriceCents: 1999, StockQuantity: 4, IsActive: true}
	repo := &stubCartRepo{}
	svc := buildCartService(t, repo, product)

	userID := uuid.New()
	if _, err := svc.AddItem(context.Background(), userID, AddItemInput{
		ProductID: product.ID,
		Quantity:  2,
		Size:      "L",
	}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if repo.upserted == nil {
		t.Fatal("expected upsert call")
	}
	if repo.upserted.UserID != userID || repo.upserted.Quantity != 2 || repo.upserted.Size != "L" {
		t.Fatalf("unexpected upserted row: %+v", repo.upserted)
	}
}

func TestServiceSetQuantityZeroRemovesIdempotently(t *testing.T) {
	repo := &stubCartRepo{deleted: 0} // nothing matched
	svc := buildCartService(t, repo, nil)

	if _, err := svc.SetQuantity(context.Background(), uuid.New(), uuid.New(), 0); err != nil {
		t.Fatalf("removal of an absent row must not error, got %v", err)
	}
}

func TestServiceSetQuantityMissingRow(t *testing.T) {
	repo := &stubCartRepo{updated: 0}
	svc := buildCartService(t, repo, nil)

	_, err := svc.SetQuantity(context.Background(), uuid.New(), uuid.New(), 3)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceRemoveItemMissingRow(t *testing.T) {
	repo := &stubCartRepo{deleted: 0}
	svc := buildCartService(t, repo, nil)

	_, err := svc.RemoveItem(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceListItemsComputesTotals(t *testing.T) {
	sale := 3999
	jeans := &models.Product{ID: uuid.New(), Name: "Denim Skinny Jeans", PriceCents: 4999, SalePriceCents: &sale, StockQuantity: 3, IsActive: true}
	tee := &models.Product{ID: uuid.New(), Name: "Basic Tee", PriceCents: 1999, StockQuantity: 7, IsActive: true}

	repo := &stubCartRepo{items: []models.CartItem{
		{ID: uuid.New(), ProductID: jeans.ID, Product: jeans, Quantity: 2, Size: "M"},
		{ID: uuid.New(), ProductID: tee.ID, Product: tee, Quantity: 1},
	}}
	svc := buildCartService(t, repo, nil)

	view, err := svc.ListItems(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected two items, got %d", len(view.Items))
	}
	if view.Items[0].UnitPriceCents != 3999 || view.Items[0].LineTotalCents != 7998 {
		t.Fatalf("unexpected jeans pricing: %+v", view.Items[0])
	}
	if view.Totals.SubtotalCents != 9997 {
		t.Fatalf("expected subtotal 9997, got %d", view.Totals.SubtotalCents)
	}
	if view.Totals.TaxCents != 800 {
		t.Fatalf("expected tax 800, got %d", view.Totals.TaxCents)
	}
	if view.Totals.GrandTotalCents != 10797 {
		t.Fatalf("expected grand total 10797, got %d", view.Totals.GrandTotalCents)
	}
}

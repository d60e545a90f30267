package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonthread/storefront-backend/internal/pricing"
	"github.com/maisonthread/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonthread/storefront-backend/pkg/errors"
)

// Service exposes the per-user cart operations.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*View, error)
	SetQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (*View, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*View, error)
	ListItems(ctx context.Context, userID uuid.UUID) (*View, error)
}

type repository interface {
	Upsert(ctx context.Context, item *models.CartItem) error
	FindOwned(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (int64, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) (int64, error)
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo       repository
	products   productFinder
	calculator pricing.Calculator
}

// ServiceParams bundles the cart service dependencies.
type ServiceParams struct {
	Repo       repository
	Products   productFinder
	Calculator pricing.Calculator
}

// NewService constructs the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product finder is required")
	}
	return &service{
		repo:       params.Repo,
		products:   params.Products,
		calculator: params.Calculator,
	}, nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*View, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}
	if product.StockQuantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is out of stock")
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  input.Quantity,
		Size:      input.Size,
		Color:     input.Color,
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert cart item")
	}

	return s.ListItems(ctx, userID)
}

func (s *service) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (*View, error) {
	if qty <= 0 {
		// removal path is idempotent, an absent row is not an error
		if _, err := s.repo.Delete(ctx, userID, itemID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
		}
		return s.ListItems(ctx, userID)
	}

	affected, err := s.repo.UpdateQuantity(ctx, userID, itemID, qty)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart quantity")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	return s.ListItems(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*View, error) {
	affected, err := s.repo.Delete(ctx, userID, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return s.ListItems(ctx, userID)
}

func (s *service) ListItems(ctx context.Context, userID uuid.UUID) (*View, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart items")
	}

	items := make([]ItemDTO, 0, len(rows))
	lines := make([]pricing.Line, 0, len(rows))
	for _, row := range rows {
		dto := itemFromModel(row)
		items = append(items, dto)
		lines = append(lines, pricing.Line{
			UnitPriceCents: dto.UnitPriceCents,
			Quantity:       dto.Quantity,
		})
	}

	return &View{
		Items:  items,
		Totals: s.calculator.ComputeTotals(lines),
	}, nil
}

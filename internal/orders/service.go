package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonthread/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonthread/storefront-backend/pkg/errors"
	"github.com/maisonthread/storefront-backend/pkg/pagination"
)

// Service exposes the profile-facing order reads.
type Service interface {
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	GetOrderByNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*OrderDTO, error)
	ListOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error)
}

type repository interface {
	FindOwned(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	FindOwnedByNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, error)
}

type service struct {
	repo repository
}

// NewService constructs the orders read service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindOwned(ctx, userID, orderID)
	if err != nil {
		return nil, mapOrderLookupErr(err)
	}
	dto := FromModel(*order)
	return &dto, nil
}

func (s *service) GetOrderByNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*OrderDTO, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	order, err := s.repo.FindOwnedByNumber(ctx, userID, orderNumber)
	if err != nil {
		return nil, mapOrderLookupErr(err)
	}
	dto := FromModel(*order)
	return &dto, nil
}

func (s *service) ListOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error) {
	rows, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	keep, hasMore := pagination.TrimPage(len(rows), params.Limit)
	page := rows[:keep]

	dtos := make([]OrderDTO, 0, len(page))
	for _, order := range page {
		dtos = append(dtos, FromModel(order))
	}

	result := &ListResult{Orders: dtos}
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

func mapOrderLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order lookup")
}

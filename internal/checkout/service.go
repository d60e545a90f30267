package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonthread/storefront-backend/internal/cart"
	"github.com/maisonthread/storefront-backend/internal/catalog"
	"github.com/maisonthread/storefront-backend/internal/orders"
	"github.com/maisonthread/storefront-backend/internal/pricing"
	"github.com/maisonthread/storefront-backend/pkg/db"
	"github.com/maisonthread/storefront-backend/pkg/db/models"
	"github.com/maisonthread/storefront-backend/pkg/enums"
	pkgerrors "github.com/maisonthread/storefront-backend/pkg/errors"
)

const (
	maxOrderNumberAttempts = 5
	orderNumberConstraint  = "idx_orders_order_number"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service places orders from the user's cart.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*orders.OrderDTO, error)
}

type service struct {
	tx          txRunner
	cartRepo    *cart.Repository
	catalogRepo *catalog.Repository
	ordersRepo  *orders.Repository
	calculator  pricing.Calculator
	numbers     NumberGenerator
	gateway     PaymentGateway
}

// ServiceParams bundles the checkout dependencies.
type ServiceParams struct {
	Tx          txRunner
	CartRepo    *cart.Repository
	CatalogRepo *catalog.Repository
	OrdersRepo  *orders.Repository
	Calculator  pricing.Calculator
	Numbers     NumberGenerator
	Gateway     PaymentGateway
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.CatalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if params.OrdersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Numbers == nil {
		params.Numbers = RandomNumberGenerator{}
	}
	if params.Gateway == nil {
		params.Gateway = StubGateway{}
	}
	return &service{
		tx:          params.Tx,
		cartRepo:    params.CartRepo,
		catalogRepo: params.CatalogRepo,
		ordersRepo:  params.OrdersRepo,
		calculator:  params.Calculator,
		numbers:     params.Numbers,
		gateway:     params.Gateway,
	}, nil
}

// PlaceOrder validates the shipping payload, snapshots the cart, revalidates
// every line, and commits the order, stock decrements, and cart clearing in
// one transaction. Duplicate order numbers are regenerated and retried
// without surfacing to the caller.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*orders.OrderDTO, error) {
	if missing := input.Shipping.MissingFields(); len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping information is incomplete").
			WithDetails(map[string]any{"missing_fields": missing})
	}
	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method")
	}

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	lines, orderItems, err := s.buildLines(items)
	if err != nil {
		return nil, err
	}
	totals := s.calculator.ComputeTotals(lines)

	var placed *models.Order
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		number, err := s.numbers.Generate()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order number")
		}

		placed, err = s.placeWithNumber(ctx, userID, number, method, input, items, orderItems, totals)
		if err == nil {
			break
		}
		if db.IsUniqueViolation(err, orderNumberConstraint) {
			// collision on the public number, roll the dice again
			placed = nil
			continue
		}
		return nil, err
	}
	if placed == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "could not allocate an order number")
	}

	dto := orders.FromModel(*placed)
	return &dto, nil
}

// buildLines revalidates each cart row against the live product and freezes
// unit prices. Shortages are collected so the error names every product.
func (s *service) buildLines(items []models.CartItem) ([]pricing.Line, []models.OrderItem, error) {
	lines := make([]pricing.Line, 0, len(items))
	orderItems := make([]models.OrderItem, 0, len(items))
	var shortages []StockShortage

	for _, item := range items {
		product := item.Product
		if product == nil {
			return nil, nil, pkgerrors.New(pkgerrors.CodeInternal, "cart row missing product")
		}
		if !product.IsActive {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("%q is no longer available", product.Name))
		}
		if product.StockQuantity < item.Quantity {
			shortages = append(shortages, StockShortage{
				ProductID:   product.ID.String(),
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   product.StockQuantity,
			})
			continue
		}

		unit := pricing.EffectiveUnitPriceCents(*product)
		lines = append(lines, pricing.Line{UnitPriceCents: unit, Quantity: item.Quantity})
		orderItems = append(orderItems, models.OrderItem{
			ProductID:      product.ID,
			ProductName:    product.Name,
			ProductSKU:     product.SKU,
			Quantity:       item.Quantity,
			UnitPriceCents: unit,
			LineTotalCents: unit * item.Quantity,
			Size:           item.Size,
			Color:          item.Color,
		})
	}

	if len(shortages) > 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "some items are out of stock").
			WithDetails(map[string]any{"items": shortages})
	}
	return lines, orderItems, nil
}

func (s *service) placeWithNumber(
	ctx context.Context,
	userID uuid.UUID,
	number string,
	method enums.PaymentMethod,
	input PlaceOrderInput,
	items []models.CartItem,
	orderItems []models.OrderItem,
	totals pricing.Totals,
) (*models.Order, error) {
	order := &models.Order{
		UserID:          userID,
		OrderNumber:     number,
		Status:          enums.OrderStatusPending,
		PaymentStatus:   enums.PaymentStatusPending,
		PaymentMethod:   method,
		SubtotalCents:   totals.SubtotalCents,
		TaxCents:        totals.TaxCents,
		ShippingCents:   totals.ShippingCents,
		TotalCents:      totals.GrandTotalCents,
		ShippingAddress: input.Shipping.FormatAddress(),
		Notes:           input.Notes,
		Items:           orderItems,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalogTx := s.catalogRepo.WithTx(tx)
		ordersTx := s.ordersRepo.WithTx(tx)
		cartTx := s.cartRepo.WithTx(tx)

		if _, err := ordersTx.Create(ctx, order); err != nil {
			return err
		}

		for _, item := range order.Items {
			ok, err := catalogTx.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeStockConflict,
					fmt.Sprintf("stock changed for %q, please retry", item.ProductName))
			}
		}

		if err := cartTx.Clear(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		return s.settlePayment(ctx, order, ordersTx)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// settlePayment drives the payment state machine inside the transaction.
// A declined authorization rolls the whole order back.
func (s *service) settlePayment(ctx context.Context, order *models.Order, ordersTx *orders.Repository) error {
	result, err := s.gateway.Authorize(ctx, AuthorizationRequest{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		AmountCents: order.TotalCents,
		Method:      order.PaymentMethod,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment authorization")
	}

	if !result.Authorized {
		if order.PaymentStatus.CanTransitionTo(enums.PaymentStatusFailed) {
			order.PaymentStatus = enums.PaymentStatusFailed
		}
		reason := result.DeclineReason
		if reason == "" {
			reason = "payment was declined"
		}
		return pkgerrors.New(pkgerrors.CodeValidation, reason)
	}

	if !order.PaymentStatus.CanTransitionTo(enums.PaymentStatusAuthorized) {
		return pkgerrors.New(pkgerrors.CodeInternal, "invalid payment transition")
	}
	order.PaymentStatus = enums.PaymentStatusAuthorized
	if !order.PaymentStatus.CanTransitionTo(enums.PaymentStatusCaptured) {
		return pkgerrors.New(pkgerrors.CodeInternal, "invalid payment transition")
	}
	order.PaymentStatus = enums.PaymentStatusCaptured
	order.Status = enums.OrderStatusConfirmed

	return ordersTx.UpdateStatuses(ctx, order.ID, order.Status, order.PaymentStatus)
}

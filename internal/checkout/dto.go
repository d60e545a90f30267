package checkout

import (
	"github.com/maisonthread/storefront-backend/pkg/types"
)

// PlaceOrderInput is the validated checkout payload.
type PlaceOrderInput struct {
	Shipping      types.ShippingInfo `json:"shipping" validate:"required"`
	PaymentMethod string             `json:"payment_method" validate:"required"`
	Notes         *string            `json:"notes,omitempty"`
}

// StockShortage names one cart line that cannot be fulfilled.
type StockShortage struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

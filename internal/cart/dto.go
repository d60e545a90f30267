package cart

import (
	"github.com/google/uuid"

	"github.com/maisonthread/storefront-backend/internal/pricing"
	"github.com/maisonthread/storefront-backend/pkg/db/models"
)

// ItemDTO is one cart row with its priced product snapshot.
type ItemDTO struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	ProductSlug    string    `json:"product_slug"`
	UnitPriceCents int       `json:"unit_price_cents"`
	OnSale         bool      `json:"on_sale"`
	Quantity       int       `json:"quantity"`
	Size           string    `json:"size,omitempty"`
	Color          string    `json:"color,omitempty"`
	LineTotalCents int       `json:"line_total_cents"`
	InStock        bool      `json:"in_stock"`
}

// View is the cart listing plus a priced summary.
type View struct {
	Items  []ItemDTO      `json:"items"`
	Totals pricing.Totals `json:"totals"`
}

// AddItemInput carries the payload for adding a selection to the cart.
type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
}

// SetQuantityInput updates one row's quantity; zero or less removes it.
type SetQuantityInput struct {
	Quantity int `json:"quantity"`
}

func itemFromModel(item models.CartItem) ItemDTO {
	dto := ItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Size:      item.Size,
		Color:     item.Color,
	}
	if item.Product != nil {
		p := *item.Product
		dto.ProductName = p.Name
		dto.ProductSlug = p.Slug
		dto.OnSale = p.OnSale()
		dto.UnitPriceCents = pricing.EffectiveUnitPriceCents(p)
		dto.LineTotalCents = pricing.LineTotalCents(p, item.Quantity)
		dto.InStock = p.StockQuantity >= item.Quantity
	}
	return dto
}

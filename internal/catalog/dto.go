package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/maisonthread/storefront-backend/pkg/db/models"
	"github.com/maisonthread/storefront-backend/pkg/pagination"
)

// CategoryDTO is the transport shape for storefront navigation entries.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	SortOrder   int       `json:"sort_order"`
}

// ProductDTO is the transport shape for catalog items.
type ProductDTO struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Slug           string        `json:"slug"`
	Description    string        `json:"description"`
	SKU            string        `json:"sku"`
	PriceCents     int           `json:"price_cents"`
	SalePriceCents *int          `json:"sale_price_cents,omitempty"`
	OnSale         bool          `json:"on_sale"`
	StockQuantity  int           `json:"stock_quantity"`
	Sizes          []string      `json:"sizes"`
	Colors         []string      `json:"colors"`
	IsActive       bool          `json:"is_active"`
	IsFeatured     bool          `json:"is_featured"`
	Categories     []CategoryDTO `json:"categories,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// ListFilter describes the supported filter knobs for the browse endpoint.
type ListFilter struct {
	CategorySlug string
	ActiveOnly   bool
	FeaturedOnly bool
	SearchTerm   string
	Pagination   pagination.Params
}

// ProductListResult carries a page of products plus the cursor for the next one.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name           string
	Slug           string
	Description    string
	SKU            string
	PriceCents     int
	SalePriceCents *int
	StockQuantity  int
	Sizes          []string
	Colors         []string
	IsActive       bool
	IsFeatured     bool
	CategoryIDs    []uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	PriceCents     *int
	SalePriceCents *int
	ClearSalePrice bool
	StockQuantity  *int
	Sizes          *[]string
	Colors         *[]string
	IsActive       *bool
	IsFeatured     *bool
}

func categoryFromModel(c models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		SortOrder:   c.SortOrder,
	}
}

func productFromModel(p models.Product) ProductDTO {
	categories := make([]CategoryDTO, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, categoryFromModel(c))
	}

	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	colors := p.Colors
	if colors == nil {
		colors = []string{}
	}

	return ProductDTO{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		SKU:            p.SKU,
		PriceCents:     p.PriceCents,
		SalePriceCents: p.SalePriceCents,
		OnSale:         p.OnSale(),
		StockQuantity:  p.StockQuantity,
		Sizes:          sizes,
		Colors:         colors,
		IsActive:       p.IsActive,
		IsFeatured:     p.IsFeatured,
		Categories:     categories,
		CreatedAt:      p.CreatedAt,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable catalog item. Prices are stored in integer
// cents; SalePriceCents, when set, must be positive and at most PriceCents.
type Product struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string     `gorm:"column:name;not null"`
	Slug           string     `gorm:"column:slug;not null;uniqueIndex"`
	Description    string     `gorm:"column:description"`
	SKU            string     `gorm:"column:sku;not null;uniqueIndex"`
	PriceCents     int        `gorm:"column:price_cents;not null"`
	SalePriceCents *int       `gorm:"column:sale_price_cents"`
	StockQuantity  int        `gorm:"column:stock_quantity;not null;default:0"`
	Sizes          []string   `gorm:"column:sizes;type:jsonb;serializer:json"`
	Colors         []string   `gorm:"column:colors;type:jsonb;serializer:json"`
	IsActive       bool       `gorm:"column:is_active;not null;default:true"`
	IsFeatured     bool       `gorm:"column:is_featured;not null;default:false"`
	Categories     []Category `gorm:"many2many:product_categories"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// OnSale reports whether a valid markdown is present.
func (p Product) OnSale() bool {
	return p.SalePriceCents != nil && *p.SalePriceCents > 0 && *p.SalePriceCents <= p.PriceCents
}

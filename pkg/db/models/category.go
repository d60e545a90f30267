package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for storefront navigation. Read-mostly; created by
// seed data or admin tooling.
type Category struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null;uniqueIndex"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex"`
	Description *string   `gorm:"column:description"`
	ImageURL    *string   `gorm:"column:image_url"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`
	Products    []Product `gorm:"many2many:product_categories"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a mutable per-user product selection. One row per
// (user, product, size, color); adds for the same combination merge
// quantities instead of duplicating rows.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_cart_selection,priority:1"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_selection,priority:2"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	Size      string    `gorm:"column:size;not null;default:'';uniqueIndex:idx_cart_selection,priority:3"`
	Color     string    `gorm:"column:color;not null;default:'';uniqueIndex:idx_cart_selection,priority:4"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/maisonthread/storefront-backend/pkg/enums"
)

// Order is the immutable record of a completed purchase. Totals are frozen at
// creation; later product price changes never alter them.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	OrderNumber     string              `gorm:"column:order_number;not null;uniqueIndex"`
	Status          enums.OrderStatus   `gorm:"column:status;not null;default:'pending'"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;not null;default:'pending'"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;not null"`
	SubtotalCents   int                 `gorm:"column:subtotal_cents;not null"`
	TaxCents        int                 `gorm:"column:tax_cents;not null"`
	ShippingCents   int                 `gorm:"column:shipping_cents;not null"`
	TotalCents      int                 `gorm:"column:total_cents;not null"`
	ShippingAddress string              `gorm:"column:shipping_address;not null"`
	BillingAddress  *string             `gorm:"column:billing_address"`
	Notes           *string             `gorm:"column:notes"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

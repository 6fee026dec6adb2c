package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem snapshots one cart line at checkout. Price is the unit price
// including selected customizations; rows are never mutated afterwards.
type OrderItem struct {
	ID             uint                     `gorm:"primaryKey" json:"id"`
	OrderID        uint                     `gorm:"not null;index" json:"order_id"`
	Order          Order                    `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID     uint                     `gorm:"not null" json:"menu_item_id"`
	MenuItem       MenuItem                 `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`
	Price          decimal.Decimal          `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity       int                      `gorm:"not null" json:"quantity"`
	FinalPrice     decimal.Decimal          `gorm:"type:decimal(10,2);not null" json:"final_price"`
	Notes          string                   `gorm:"type:text" json:"notes"`
	Customizations []OrderItemCustomization `gorm:"foreignKey:OrderItemID" json:"customizations"`
	CreatedAt      time.Time                `gorm:"not null" json:"created_at"`
}

type OrderItemCustomization struct {
	ID                    uint                `gorm:"primaryKey" json:"id"`
	OrderItemID           uint                `gorm:"not null;index" json:"order_item_id"`
	CustomizationOptionID uint                `gorm:"not null" json:"customization_option_id"`
	Option                CustomizationOption `gorm:"foreignKey:CustomizationOptionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"option"`
	FinalPrice            decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"final_price"`
	CreatedAt             time.Time           `gorm:"not null" json:"created_at"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the mutable pre-order draft for a session. Checkout consumes it
// and clears it inside the same transaction that creates the order.
type Cart struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SessionID uint            `gorm:"not null;uniqueIndex" json:"session_id"`
	Session   DiningSession   `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	SubTotal  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"sub_total"`
	Items     []CartItem      `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

type CartItem struct {
	ID             uint                    `gorm:"primaryKey" json:"id"`
	CartID         uint                    `gorm:"not null;index" json:"cart_id"`
	MenuItemID     uint                    `gorm:"not null" json:"menu_item_id"`
	MenuItem       MenuItem                `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`
	Quantity       int                     `gorm:"not null" json:"quantity"`
	Notes          string                  `gorm:"type:text" json:"notes"`
	Customizations []CartItemCustomization `gorm:"foreignKey:CartItemID" json:"customizations"`
	CreatedAt      time.Time               `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time               `gorm:"not null" json:"updated_at"`
}

type CartItemCustomization struct {
	ID                    uint                `gorm:"primaryKey" json:"id"`
	CartItemID            uint                `gorm:"not null;index" json:"cart_item_id"`
	CustomizationOptionID uint                `gorm:"not null" json:"customization_option_id"`
	Option                CustomizationOption `gorm:"foreignKey:CustomizationOptionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"option"`
	CreatedAt             time.Time           `gorm:"not null" json:"created_at"`
}

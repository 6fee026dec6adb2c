package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	StoreID     uint                 `gorm:"not null;index" json:"store_id"`
	Store       Store                `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name        string               `gorm:"type:varchar(255);not null" json:"name"`
	Description string               `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal      `gorm:"type:decimal(10,2);not null" json:"base_price"`
	Groups      []CustomizationGroup `gorm:"foreignKey:MenuItemID" json:"groups,omitempty"`
	CreatedAt   time.Time            `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`
}

type CustomizationGroup struct {
	ID         uint                  `gorm:"primaryKey" json:"id"`
	MenuItemID uint                  `gorm:"not null;index" json:"menu_item_id"`
	Name       string                `gorm:"type:varchar(255);not null" json:"name"`
	Options    []CustomizationOption `gorm:"foreignKey:GroupID" json:"options,omitempty"`
	CreatedAt  time.Time             `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time             `gorm:"not null" json:"updated_at"`
}

type CustomizationOption struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	GroupID         uint            `gorm:"not null;index" json:"group_id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	AdditionalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"additional_price"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}

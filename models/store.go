package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff roles, scoped per store through StaffRole rows.
const (
	RoleOwner   = "OWNER"
	RoleAdmin   = "ADMIN"
	RoleCashier = "CASHIER"
	RoleServer  = "SERVER"
	RoleChef    = "CHEF"
)

// StaffOrderRoles are the roles allowed to place orders on behalf of a session.
var StaffOrderRoles = []string{RoleOwner, RoleAdmin, RoleServer, RoleCashier, RoleChef}

type Store struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// StoreSetting holds the current tax/service-charge rates for a store.
// Rates are fractions (0.07 = 7%). A store without a row is treated as
// having both rates at zero.
type StoreSetting struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	StoreID           uint            `gorm:"not null;uniqueIndex" json:"store_id"`
	Store             Store           `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	VatRate           decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0" json:"vat_rate"`
	ServiceChargeRate decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0" json:"service_charge_rate"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`
}

// StaffRole assigns a user a role in one store.
type StaffRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_staff_roles_user_store_role" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	StoreID   uint      `gorm:"not null;uniqueIndex:idx_staff_roles_user_store_role" json:"store_id"`
	Store     Store     `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_staff_roles_user_store_role" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   uint      `gorm:"not null;index" json:"store_id"`
	Store     Store     `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

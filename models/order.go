package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusServed    OrderStatus = "SERVED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

const (
	OrderTypeDineIn   = "DINE_IN"
	OrderTypeTakeaway = "TAKEAWAY"
	OrderTypeDelivery = "DELIVERY"
)

const (
	DiscountTypePercentage = "PERCENTAGE"
	DiscountTypeFixed      = "FIXED"
)

// ValidOrderType reports whether t names a known order type.
func ValidOrderType(t string) bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}

// orderTransitions is the full transition table. CANCELLED is terminal;
// COMPLETED -> CANCELLED exists for the refund/correction path.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusServed, OrderStatusCancelled},
	OrderStatusServed:    {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {OrderStatusCancelled},
	OrderStatusCancelled: {},
}

// ValidOrderStatus reports whether s names a known status.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status change from s to target is
// allowed by the order lifecycle.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Order is the immutable record of a sale. Totals are always written
// together; rate snapshots are captured at creation and never re-read
// from store settings.
type Order struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	StoreID     uint          `gorm:"not null;uniqueIndex:idx_orders_store_day_seq" json:"store_id"`
	Store       Store         `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	SessionID   uint          `gorm:"not null;index" json:"session_id"`
	Session     DiningSession `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	OrderNumber string        `gorm:"type:varchar(20);not null" json:"order_number"`
	OrderDate   int           `gorm:"not null;uniqueIndex:idx_orders_store_day_seq" json:"order_date"`
	Sequence    int           `gorm:"not null;uniqueIndex:idx_orders_store_day_seq" json:"sequence"`
	Status      OrderStatus   `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	OrderType   string        `gorm:"type:varchar(20);not null" json:"order_type"`
	TableLabel  string        `gorm:"type:varchar(100);not null" json:"table_label"`

	SubTotal          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sub_total"`
	VatRate           decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"vat_rate"`
	ServiceChargeRate decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"service_charge_rate"`
	VatAmount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"vat_amount"`
	ServiceCharge     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"service_charge_amount"`
	GrandTotal        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"grand_total"`

	DiscountType      *string          `gorm:"type:varchar(20)" json:"discount_type,omitempty"`
	DiscountValue     *decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_value,omitempty"`
	DiscountAmount    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_amount,omitempty"`
	DiscountReason    *string          `gorm:"type:varchar(255)" json:"discount_reason,omitempty"`
	DiscountAppliedBy *uint            `json:"discount_applied_by,omitempty"`
	DiscountAppliedAt *time.Time       `json:"discount_applied_at,omitempty"`

	PaidAt    *time.Time  `json:"paid_at,omitempty"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Payments  []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
	Refunds   []Refund    `gorm:"foreignKey:OrderID" json:"refunds,omitempty"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

// DiscountOrZero returns the applied discount amount, or zero when the
// order carries no discount.
func (o *Order) DiscountOrZero() decimal.Decimal {
	if o.DiscountAmount == nil {
		return decimal.Zero
	}
	return *o.DiscountAmount
}

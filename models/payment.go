package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodQR       = "QR"
	PaymentMethodTransfer = "TRANSFER"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodQR, PaymentMethodTransfer:
		return true
	}
	return false
}

// Payment is one settled amount recorded against an order. Rows are
// append-only; bill splitting is any number of rows of any amounts.
type Payment struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	OrderID   uint             `gorm:"not null;index" json:"order_id"`
	Order     Order            `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Amount    decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method    string           `gorm:"type:varchar(20);not null" json:"method"`
	Tendered  *decimal.Decimal `gorm:"type:decimal(10,2)" json:"tendered,omitempty"`
	Change    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"change,omitempty"`
	CreatedAt time.Time        `gorm:"not null" json:"created_at"`
}

// Refund is an append-only reversal against an order's payments.
type Refund struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	Order     Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reason    string          `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
}

package models

import "time"

const (
	SessionTypeTable    = "TABLE"
	SessionTypeTakeaway = "TAKEAWAY"
	SessionTypeDelivery = "DELIVERY"

	SessionStatusOpen   = "OPEN"
	SessionStatusClosed = "CLOSED"
)

// DiningSession is the customer-facing ordering context. Table-bound
// sessions carry a TableID; quick-sale sessions only carry a type.
type DiningSession struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StoreID       uint      `gorm:"not null;index" json:"store_id"`
	Store         Store     `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TableID       *uint     `gorm:"index" json:"table_id,omitempty"`
	Table         *Table    `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table,omitempty"`
	Type          string    `gorm:"type:varchar(20);not null" json:"type"`
	SessionToken  string    `gorm:"type:varchar(64);not null;index" json:"-"`
	Status        string    `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	CustomerName  string    `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerPhone string    `gorm:"type:varchar(50)" json:"customer_phone,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// TypeLabel is the display label used when an order has no table name.
func (s *DiningSession) TypeLabel() string {
	switch s.Type {
	case SessionTypeTable:
		return "Dine In"
	case SessionTypeTakeaway:
		return "Takeaway"
	case SessionTypeDelivery:
		return "Delivery"
	}
	return s.Type
}

// ValidSessionType reports whether t is a known session type.
func ValidSessionType(t string) bool {
	switch t {
	case SessionTypeTable, SessionTypeTakeaway, SessionTypeDelivery:
		return true
	}
	return false
}

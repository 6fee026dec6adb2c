package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/models"
)

// PaymentStatus is the reconciliation of an order's payment and refund
// rows against its grand total.
type PaymentStatus struct {
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalRefunded    decimal.Decimal `json:"total_refunded"`
	NetPaid          decimal.Decimal `json:"net_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	IsPaidInFull     bool            `json:"is_paid_in_full"`
}

// ComputePaymentStatus folds the stored rows into a status. Pure and
// idempotent: there is no cached counter to drift, every read path calls
// this against current rows.
func ComputePaymentStatus(grandTotal decimal.Decimal, payments []models.Payment, refunds []models.Refund) PaymentStatus {
	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
	}
	totalRefunded := decimal.Zero
	for _, r := range refunds {
		totalRefunded = totalRefunded.Add(r.Amount)
	}
	netPaid := totalPaid.Sub(totalRefunded)
	return PaymentStatus{
		TotalPaid:        totalPaid,
		TotalRefunded:    totalRefunded,
		NetPaid:          netPaid,
		RemainingBalance: grandTotal.Sub(netPaid),
		IsPaidInFull:     netPaid.GreaterThanOrEqual(grandTotal),
	}
}

// loadPaymentStatus re-reads the order's rows and reconciles them.
func loadPaymentStatus(db *gorm.DB, order *models.Order) (PaymentStatus, error) {
	var payments []models.Payment
	if err := db.Where("order_id = ?", order.ID).Find(&payments).Error; err != nil {
		return PaymentStatus{}, apperrors.Internal(err)
	}
	var refunds []models.Refund
	if err := db.Where("order_id = ?", order.ID).Find(&refunds).Error; err != nil {
		return PaymentStatus{}, apperrors.Internal(err)
	}
	return ComputePaymentStatus(order.GrandTotal, payments, refunds), nil
}

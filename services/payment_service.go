package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/database"
	"github.com/plateful/pos-backend/models"
)

// PaymentService appends payment and refund rows. Rows are never edited
// or deleted; the ledger is recomputed from them on every read.
type PaymentService struct {
	DB  *gorm.DB
	UoW *database.UnitOfWork
	Log *logrus.Logger
}

func NewPaymentService(db *gorm.DB, log *logrus.Logger) *PaymentService {
	return &PaymentService{DB: db, UoW: database.NewUnitOfWork(db), Log: log}
}

// RecordPayment appends one settled amount. Cash payments may carry the
// tendered amount; change is computed against it.
func (s *PaymentService) RecordPayment(orderID uint, amount decimal.Decimal, method string, tendered *decimal.Decimal) (*models.Order, PaymentStatus, error) {
	if !amount.IsPositive() {
		return nil, PaymentStatus{}, apperrors.Validationf("payment amount must be positive")
	}
	if !models.ValidPaymentMethod(method) {
		return nil, PaymentStatus{}, apperrors.Validationf("unknown payment method %q", method)
	}

	order, err := findOrder(s.DB, orderID)
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, PaymentStatus{}, apperrors.InvalidStatef("order %d is cancelled", orderID)
	}

	status, err := loadPaymentStatus(s.DB, order)
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	if status.IsPaidInFull {
		return nil, PaymentStatus{}, apperrors.InvalidStatef("order %d is already paid in full", orderID)
	}

	var change *decimal.Decimal
	if tendered != nil {
		if method != models.PaymentMethodCash {
			return nil, PaymentStatus{}, apperrors.Validationf("tendered amount only applies to cash payments")
		}
		if tendered.LessThan(amount) {
			return nil, PaymentStatus{}, apperrors.Validationf("tendered amount is less than the payment amount")
		}
		c := tendered.Sub(amount)
		change = &c
	}

	err = s.UoW.Execute(func(tx *gorm.DB) error {
		payment := models.Payment{
			OrderID:   orderID,
			Amount:    amount,
			Method:    method,
			Tendered:  tendered,
			Change:    change,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	hydrated, status, err := hydrateOrder(s.DB, orderID)
	if err != nil {
		s.Log.Errorf("order %d: payment of %s recorded but reload failed: %v", orderID, amount, err)
		return nil, PaymentStatus{}, err
	}
	return hydrated, status, nil
}

// RecordRefund appends one reversal; it can never exceed what was
// actually netted against the order.
func (s *PaymentService) RecordRefund(orderID uint, amount decimal.Decimal, reason string) (*models.Order, PaymentStatus, error) {
	if !amount.IsPositive() {
		return nil, PaymentStatus{}, apperrors.Validationf("refund amount must be positive")
	}

	order, err := findOrder(s.DB, orderID)
	if err != nil {
		return nil, PaymentStatus{}, err
	}

	status, err := loadPaymentStatus(s.DB, order)
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	if amount.GreaterThan(status.NetPaid) {
		return nil, PaymentStatus{}, apperrors.Validationf("refund exceeds the net amount paid")
	}

	err = s.UoW.Execute(func(tx *gorm.DB) error {
		refund := models.Refund{
			OrderID:   orderID,
			Amount:    amount,
			Reason:    reason,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&refund).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	hydrated, status, err := hydrateOrder(s.DB, orderID)
	if err != nil {
		s.Log.Errorf("order %d: refund of %s recorded but reload failed: %v", orderID, amount, err)
		return nil, PaymentStatus{}, err
	}
	return hydrated, status, nil
}

// Status reconciles the order's rows into a payment status.
func (s *PaymentService) Status(orderID uint) (PaymentStatus, error) {
	order, err := findOrder(s.DB, orderID)
	if err != nil {
		return PaymentStatus{}, err
	}
	return loadPaymentStatus(s.DB, order)
}

// List returns the append-only payment and refund rows for an order.
func (s *PaymentService) List(orderID uint) ([]models.Payment, []models.Refund, error) {
	if _, err := findOrder(s.DB, orderID); err != nil {
		return nil, nil, err
	}
	var payments []models.Payment
	if err := s.DB.Where("order_id = ?", orderID).Order("created_at asc").Find(&payments).Error; err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	var refunds []models.Refund
	if err := s.DB.Where("order_id = ?", orderID).Order("created_at asc").Find(&refunds).Error; err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	return payments, refunds, nil
}

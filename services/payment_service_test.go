package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/models"
)

func paymentSetup(t *testing.T) (*PaymentService, *gorm.DB, models.Order) {
	db := newTestDB(t)
	store := seedStore(t, db, "0.07", "0.10")
	order := seedOrder(t, db, store.ID, "100.00", "0.07", "0.10") // grand 117.00
	return NewPaymentService(db, testLogger()), db, order
}

func TestRecordPaymentPartialThenFull(t *testing.T) {
	svc, _, order := paymentSetup(t)

	_, status, err := svc.RecordPayment(order.ID, dec("100.00"), models.PaymentMethodCard, nil)
	assert.NoError(t, err)
	assert.Equal(t, "17.00", status.RemainingBalance.StringFixed(2))
	assert.False(t, status.IsPaidInFull)

	_, status, err = svc.RecordPayment(order.ID, dec("17.00"), models.PaymentMethodCash, nil)
	assert.NoError(t, err)
	assert.Equal(t, "0.00", status.RemainingBalance.StringFixed(2))
	assert.True(t, status.IsPaidInFull)
}

func TestRecordPaymentCashChange(t *testing.T) {
	svc, db, order := paymentSetup(t)

	tendered := dec("120.00")
	_, _, err := svc.RecordPayment(order.ID, dec("117.00"), models.PaymentMethodCash, &tendered)
	assert.NoError(t, err)

	var row models.Payment
	assert.NoError(t, db.Where("order_id = ?", order.ID).First(&row).Error)
	assert.Equal(t, "120.00", row.Tendered.StringFixed(2))
	assert.Equal(t, "3.00", row.Change.StringFixed(2))
}

func TestRecordPaymentTenderedRules(t *testing.T) {
	svc, _, order := paymentSetup(t)

	tendered := dec("120.00")
	_, _, err := svc.RecordPayment(order.ID, dec("117.00"), models.PaymentMethodCard, &tendered)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	short := dec("100.00")
	_, _, err = svc.RecordPayment(order.ID, dec("117.00"), models.PaymentMethodCash, &short)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestRecordPaymentValidation(t *testing.T) {
	svc, _, order := paymentSetup(t)

	_, _, err := svc.RecordPayment(order.ID, decimal.Zero, models.PaymentMethodCash, nil)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, _, err = svc.RecordPayment(order.ID, dec("-5.00"), models.PaymentMethodCash, nil)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, _, err = svc.RecordPayment(order.ID, dec("10.00"), "CHEQUE", nil)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, _, err = svc.RecordPayment(9999, dec("10.00"), models.PaymentMethodCash, nil)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestRecordPaymentRejectsCancelledOrder(t *testing.T) {
	svc, db, order := paymentSetup(t)
	assert.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusCancelled).Error)

	_, _, err := svc.RecordPayment(order.ID, dec("10.00"), models.PaymentMethodCash, nil)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}

func TestRecordPaymentRejectsSettledOrder(t *testing.T) {
	svc, _, order := paymentSetup(t)

	_, _, err := svc.RecordPayment(order.ID, dec("117.00"), models.PaymentMethodCard, nil)
	assert.NoError(t, err)

	_, _, err = svc.RecordPayment(order.ID, dec("1.00"), models.PaymentMethodCash, nil)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}

func TestRecordRefundReopensBalance(t *testing.T) {
	svc, _, order := paymentSetup(t)

	_, _, err := svc.RecordPayment(order.ID, dec("117.00"), models.PaymentMethodCard, nil)
	assert.NoError(t, err)

	_, status, err := svc.RecordRefund(order.ID, dec("20.00"), "cold food")
	assert.NoError(t, err)
	assert.Equal(t, "97.00", status.NetPaid.StringFixed(2))
	assert.Equal(t, "20.00", status.RemainingBalance.StringFixed(2))
	assert.False(t, status.IsPaidInFull)
}

func TestRecordRefundCannotExceedNetPaid(t *testing.T) {
	svc, _, order := paymentSetup(t)

	_, _, err := svc.RecordPayment(order.ID, dec("50.00"), models.PaymentMethodCard, nil)
	assert.NoError(t, err)

	_, _, err = svc.RecordRefund(order.ID, dec("50.01"), "")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// Sequential refunds are bounded by the running net, not the total.
	_, _, err = svc.RecordRefund(order.ID, dec("30.00"), "")
	assert.NoError(t, err)
	_, _, err = svc.RecordRefund(order.ID, dec("30.00"), "")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestRecordRefundValidation(t *testing.T) {
	svc, _, order := paymentSetup(t)

	_, _, err := svc.RecordRefund(order.ID, decimal.Zero, "")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestListReturnsLedgerRows(t *testing.T) {
	svc, _, order := paymentSetup(t)

	_, _, err := svc.RecordPayment(order.ID, dec("50.00"), models.PaymentMethodCard, nil)
	assert.NoError(t, err)
	_, _, err = svc.RecordPayment(order.ID, dec("67.00"), models.PaymentMethodCash, nil)
	assert.NoError(t, err)
	_, _, err = svc.RecordRefund(order.ID, dec("10.00"), "spill")
	assert.NoError(t, err)

	payments, refunds, err := svc.List(order.ID)
	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Len(t, refunds, 1)
	assert.Equal(t, "spill", refunds[0].Reason)

	status, err := svc.Status(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "107.00", status.NetPaid.StringFixed(2))
}

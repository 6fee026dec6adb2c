package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/models"
)

// findOrder loads an order with its line items and customizations.
func findOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items.Customizations.Option").
		Preload("Items.MenuItem").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("order %d not found", orderID)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &order, nil
}

// findStoreOrder is findOrder plus the store-scoping rule: an order that
// belongs to another store is reported as missing, never leaked.
func findStoreOrder(db *gorm.DB, storeID, orderID uint) (*models.Order, error) {
	order, err := findOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if order.StoreID != storeID {
		return nil, apperrors.NotFoundf("order %d not found", orderID)
	}
	return order, nil
}

// hydrateOrder returns the order together with its freshly recomputed
// payment status.
func hydrateOrder(db *gorm.DB, orderID uint) (*models.Order, PaymentStatus, error) {
	order, err := findOrder(db, orderID)
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	status, err := loadPaymentStatus(db, order)
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	return order, status, nil
}

// storeRates returns the store's current vat/service-charge rates, both
// zero when no settings row exists.
func storeRates(db *gorm.DB, storeID uint) (vat, serviceCharge decimal.Decimal, err error) {
	var setting models.StoreSetting
	e := db.Where("store_id = ?", storeID).First(&setting).Error
	if errors.Is(e, gorm.ErrRecordNotFound) {
		return decimal.Zero, decimal.Zero, nil
	}
	if e != nil {
		return decimal.Zero, decimal.Zero, apperrors.Internal(e)
	}
	return setting.VatRate, setting.ServiceChargeRate, nil
}

package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/database"
	"github.com/plateful/pos-backend/models"
	"github.com/plateful/pos-backend/pricing"
)

var (
	tierAdmin = decimal.NewFromInt(10)
	tierOwner = decimal.NewFromInt(50)
	hundred   = decimal.NewFromInt(100)
)

// DiscountRoles returns the roles allowed to grant a discount of the
// given percentage of the subtotal. The tier is computed against the
// original subtotal, not the discounted total.
func DiscountRoles(percentage decimal.Decimal) []string {
	switch {
	case percentage.GreaterThanOrEqual(tierOwner):
		return []string{models.RoleOwner}
	case percentage.GreaterThanOrEqual(tierAdmin):
		return []string{models.RoleOwner, models.RoleAdmin}
	default:
		return []string{models.RoleOwner, models.RoleAdmin, models.RoleCashier}
	}
}

// DiscountService applies and removes order discounts. Totals are always
// recomputed as one unit from the order's snapshot rates.
type DiscountService struct {
	DB    *gorm.DB
	UoW   *database.UnitOfWork
	Perms *PermissionChecker
	Log   *logrus.Logger
}

func NewDiscountService(db *gorm.DB, log *logrus.Logger) *DiscountService {
	return &DiscountService{
		DB:    db,
		UoW:   database.NewUnitOfWork(db),
		Perms: NewPermissionChecker(db),
		Log:   log,
	}
}

// Apply validates the discount, authorizes the actor against the tier it
// falls into, and rewrites the order's totals.
func (s *DiscountService) Apply(actorID, storeID, orderID uint, discountType string, value decimal.Decimal, reason string) (*models.Order, PaymentStatus, error) {
	order, err := findStoreOrder(s.DB, storeID, orderID)
	if err != nil {
		return nil, PaymentStatus{}, err
	}

	if err := s.rejectFullyPaid(order); err != nil {
		return nil, PaymentStatus{}, err
	}

	amount, err := discountAmount(order.SubTotal, discountType, value)
	if err != nil {
		return nil, PaymentStatus{}, err
	}

	percentage := pricing.Percentage(amount, order.SubTotal)
	if err := s.Perms.Require(actorID, storeID, DiscountRoles(percentage)...); err != nil {
		return nil, PaymentStatus{}, err
	}

	err = s.UoW.Execute(func(tx *gorm.DB) error {
		totals := pricing.Price(order.SubTotal, order.VatRate, order.ServiceChargeRate, amount)
		now := time.Now()
		updates := map[string]interface{}{
			"discount_type":       discountType,
			"discount_value":      value,
			"discount_amount":     amount,
			"discount_reason":     reason,
			"discount_applied_by": actorID,
			"discount_applied_at": now,
			"vat_amount":          totals.VatAmount,
			"service_charge":      totals.ServiceCharge,
			"grand_total":         totals.GrandTotal,
			"updated_at":          now,
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(updates).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	hydrated, status, err := hydrateOrder(s.DB, orderID)
	if err != nil {
		s.Log.Errorf("order %d: discount applied but reload failed: %v", orderID, err)
		return nil, PaymentStatus{}, err
	}
	return hydrated, status, nil
}

// Remove clears the discount and restores totals from the snapshot
// rates. Removal is OWNER/ADMIN regardless of the discount's size.
func (s *DiscountService) Remove(actorID, storeID, orderID uint) (*models.Order, PaymentStatus, error) {
	order, err := findStoreOrder(s.DB, storeID, orderID)
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	if order.DiscountAmount == nil {
		return nil, PaymentStatus{}, apperrors.Validationf("order %d has no discount", orderID)
	}

	if err := s.rejectFullyPaid(order); err != nil {
		return nil, PaymentStatus{}, err
	}
	if err := s.Perms.Require(actorID, storeID, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, PaymentStatus{}, err
	}

	err = s.UoW.Execute(func(tx *gorm.DB) error {
		totals := pricing.Price(order.SubTotal, order.VatRate, order.ServiceChargeRate, decimal.Zero)
		updates := map[string]interface{}{
			"discount_type":       nil,
			"discount_value":      nil,
			"discount_amount":     nil,
			"discount_reason":     nil,
			"discount_applied_by": nil,
			"discount_applied_at": nil,
			"vat_amount":          totals.VatAmount,
			"service_charge":      totals.ServiceCharge,
			"grand_total":         totals.GrandTotal,
			"updated_at":          time.Now(),
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(updates).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	hydrated, status, err := hydrateOrder(s.DB, orderID)
	if err != nil {
		s.Log.Errorf("order %d: discount removed but reload failed: %v", orderID, err)
		return nil, PaymentStatus{}, err
	}
	return hydrated, status, nil
}

// rejectFullyPaid blocks discount changes on settled orders.
func (s *DiscountService) rejectFullyPaid(order *models.Order) error {
	status, err := loadPaymentStatus(s.DB, order)
	if err != nil {
		return err
	}
	if status.IsPaidInFull {
		return apperrors.InvalidStatef("order %d is already paid in full", order.ID)
	}
	return nil
}

// discountAmount validates the requested discount and converts it into a
// concrete amount against the subtotal.
func discountAmount(subTotal decimal.Decimal, discountType string, value decimal.Decimal) (decimal.Decimal, error) {
	switch discountType {
	case models.DiscountTypePercentage:
		if !value.IsPositive() || value.GreaterThan(hundred) {
			return decimal.Zero, apperrors.Validationf("percentage discount must be between 0 and 100")
		}
		return pricing.PercentageAmount(subTotal, value), nil
	case models.DiscountTypeFixed:
		if !value.IsPositive() {
			return decimal.Zero, apperrors.Validationf("fixed discount must be positive")
		}
		if value.GreaterThan(subTotal) {
			return decimal.Zero, apperrors.Validationf("fixed discount cannot exceed the subtotal")
		}
		return value, nil
	}
	return decimal.Zero, apperrors.Validationf("unknown discount type %q", discountType)
}

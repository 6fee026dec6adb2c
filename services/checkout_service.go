package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/database"
	"github.com/plateful/pos-backend/kds"
	"github.com/plateful/pos-backend/models"
	"github.com/plateful/pos-backend/pricing"
)

const orderNumberAttempts = 3

// CheckoutService turns a session's cart into an order. The order, its
// items and customizations, and the cart clear all commit together.
type CheckoutService struct {
	DB    *gorm.DB
	UoW   *database.UnitOfWork
	Perms *PermissionChecker
	Hub   *kds.Hub
	Log   *logrus.Logger
}

func NewCheckoutService(db *gorm.DB, hub *kds.Hub, log *logrus.Logger) *CheckoutService {
	return &CheckoutService{
		DB:    db,
		UoW:   database.NewUnitOfWork(db),
		Perms: NewPermissionChecker(db),
		Hub:   hub,
		Log:   log,
	}
}

type CheckoutInput struct {
	SessionID         uint
	OrderType         string
	TableNameOverride string
	SessionToken      string
	ActorID           uint
}

func (s *CheckoutService) Checkout(in CheckoutInput) (*models.Order, PaymentStatus, error) {
	if !models.ValidOrderType(in.OrderType) {
		return nil, PaymentStatus{}, apperrors.Validationf("unknown order type %q", in.OrderType)
	}

	var session models.DiningSession
	err := s.DB.Preload("Table").First(&session, in.SessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, PaymentStatus{}, apperrors.NotFoundf("session %d not found", in.SessionID)
	}
	if err != nil {
		return nil, PaymentStatus{}, apperrors.Internal(err)
	}
	if session.Status == models.SessionStatusClosed {
		return nil, PaymentStatus{}, apperrors.InvalidStatef("session %d is closed", session.ID)
	}

	if err := s.authorize(&session, in); err != nil {
		return nil, PaymentStatus{}, err
	}

	var cart models.Cart
	err = s.DB.Preload("Items.MenuItem").
		Preload("Items.Customizations.Option").
		Where("session_id = ?", session.ID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, PaymentStatus{}, apperrors.NotFoundf("cart not found for session %d", session.ID)
	}
	if err != nil {
		return nil, PaymentStatus{}, apperrors.Internal(err)
	}
	if len(cart.Items) == 0 {
		return nil, PaymentStatus{}, apperrors.Validationf("Cart is empty")
	}

	lines, subTotal, err := priceCartLines(cart.Items)
	if err != nil {
		return nil, PaymentStatus{}, err
	}

	vatRate, svcRate, err := storeRates(s.DB, session.StoreID)
	if err != nil {
		return nil, PaymentStatus{}, err
	}

	var orderID uint
	err = s.UoW.ExecuteWithRetry(orderNumberAttempts, func(tx *gorm.DB) error {
		now := time.Now()
		orderDate, sequence, number, err := allocateOrderNumber(tx, session.StoreID, now)
		if err != nil {
			return apperrors.Internal(err)
		}

		totals := pricing.Price(subTotal, vatRate, svcRate, decimal.Zero)
		order := models.Order{
			StoreID:           session.StoreID,
			SessionID:         session.ID,
			OrderNumber:       number,
			OrderDate:         orderDate,
			Sequence:          sequence,
			Status:            models.OrderStatusPending,
			OrderType:         in.OrderType,
			TableLabel:        resolveTableLabel(&session, in.TableNameOverride),
			SubTotal:          subTotal,
			VatRate:           vatRate,
			ServiceChargeRate: svcRate,
			VatAmount:         totals.VatAmount,
			ServiceCharge:     totals.ServiceCharge,
			GrandTotal:        totals.GrandTotal,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.Create(&order).Error; err != nil {
			// Duplicate (store, day, sequence) bubbles up so the
			// retry loop can re-count.
			return err
		}

		if err := createOrderLines(tx, order.ID, lines); err != nil {
			return err
		}
		if err := clearCart(tx, &cart); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.Log.Errorf("checkout session %d: order number allocation for store %d gave up after %d attempts: %v",
				session.ID, session.StoreID, orderNumberAttempts, err)
		}
		if apperrors.KindOf(err) == apperrors.KindInternal {
			return nil, PaymentStatus{}, apperrors.Internal(err)
		}
		return nil, PaymentStatus{}, err
	}

	order, status, err := hydrateOrder(s.DB, orderID)
	if err != nil {
		s.Log.Errorf("checkout session %d: order %d committed but reload failed: %v", session.ID, orderID, err)
		return nil, PaymentStatus{}, err
	}
	s.notifyCreated(order)
	return order, status, nil
}

// authorize accepts either the session's own token or a staff actor with
// an ordering role in the session's store.
func (s *CheckoutService) authorize(session *models.DiningSession, in CheckoutInput) error {
	if in.SessionToken == "" && in.ActorID == 0 {
		return apperrors.Unauthenticatedf("a session token or staff credentials are required")
	}
	if in.SessionToken != "" {
		if in.SessionToken != session.SessionToken {
			return apperrors.Forbiddenf("session token does not match")
		}
		return nil
	}
	return s.Perms.Require(in.ActorID, session.StoreID, models.StaffOrderRoles...)
}

func (s *CheckoutService) notifyCreated(order *models.Order) {
	if s.Hub == nil {
		return
	}
	s.Hub.OrderCreated(order.StoreID, order)
}

// orderLine is a priced cart line waiting to be written as order rows.
type orderLine struct {
	menuItemID uint
	unitPrice  decimal.Decimal
	quantity   int
	notes      string
	options    []models.CustomizationOption
}

// priceCartLines fixes unit prices (base plus selected customizations)
// and returns the cart subtotal.
func priceCartLines(items []models.CartItem) ([]orderLine, decimal.Decimal, error) {
	lines := make([]orderLine, 0, len(items))
	subTotal := decimal.Zero
	for _, item := range items {
		if item.MenuItem.ID == 0 {
			return nil, decimal.Zero, apperrors.NotFoundf("menu item %d no longer exists", item.MenuItemID)
		}
		if item.Quantity <= 0 {
			return nil, decimal.Zero, apperrors.Validationf("cart item %d has a non-positive quantity", item.ID)
		}

		unit := item.MenuItem.BasePrice
		options := make([]models.CustomizationOption, 0, len(item.Customizations))
		for _, cust := range item.Customizations {
			if cust.Option.ID == 0 {
				return nil, decimal.Zero, apperrors.NotFoundf("customization option %d no longer exists", cust.CustomizationOptionID)
			}
			unit = unit.Add(cust.Option.AdditionalPrice)
			options = append(options, cust.Option)
		}

		lines = append(lines, orderLine{
			menuItemID: item.MenuItemID,
			unitPrice:  unit,
			quantity:   item.Quantity,
			notes:      item.Notes,
			options:    options,
		})
		subTotal = subTotal.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return lines, subTotal, nil
}

// createOrderLines persists the order items and their customization rows.
func createOrderLines(tx *gorm.DB, orderID uint, lines []orderLine) error {
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.quantity))
		item := models.OrderItem{
			OrderID:    orderID,
			MenuItemID: line.menuItemID,
			Price:      line.unitPrice,
			Quantity:   line.quantity,
			FinalPrice: line.unitPrice.Mul(qty),
			Notes:      line.notes,
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return apperrors.Internal(err)
		}
		for _, opt := range line.options {
			cust := models.OrderItemCustomization{
				OrderItemID:           item.ID,
				CustomizationOptionID: opt.ID,
				FinalPrice:            opt.AdditionalPrice.Mul(qty),
				CreatedAt:             time.Now(),
			}
			if err := tx.Create(&cust).Error; err != nil {
				return apperrors.Internal(err)
			}
		}
	}
	return nil
}

// clearCart removes the cart's rows and zeroes its draft subtotal. Runs
// last inside the checkout transaction so any earlier failure leaves the
// cart untouched.
func clearCart(tx *gorm.DB, cart *models.Cart) error {
	itemIDs := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		itemIDs = append(itemIDs, item.ID)
	}
	if len(itemIDs) > 0 {
		if err := tx.Where("cart_item_id IN ?", itemIDs).Delete(&models.CartItemCustomization{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return apperrors.Internal(err)
		}
	}
	if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Update("sub_total", decimal.Zero).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// resolveTableLabel picks, in priority order: the explicit override, the
// physical table name, the session-type display label.
func resolveTableLabel(session *models.DiningSession, override string) string {
	if override != "" {
		return override
	}
	if session.Table != nil && session.Table.Name != "" {
		return session.Table.Name
	}
	return session.TypeLabel()
}

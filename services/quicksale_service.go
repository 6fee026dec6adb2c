package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
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

// QuickSaleService creates session-less orders for counter sales. It opens
// the session itself instead of consuming a cart; table orders must go
// through the cart flow.
type QuickSaleService struct {
	DB       *gorm.DB
	UoW      *database.UnitOfWork
	Perms    *PermissionChecker
	Sessions *SessionService
	Hub      *kds.Hub
	Log      *logrus.Logger
}

func NewQuickSaleService(db *gorm.DB, hub *kds.Hub, log *logrus.Logger) *QuickSaleService {
	return &QuickSaleService{
		DB:       db,
		UoW:      database.NewUnitOfWork(db),
		Perms:    NewPermissionChecker(db),
		Sessions: NewSessionService(db),
		Hub:      hub,
		Log:      log,
	}
}

type QuickSaleItem struct {
	MenuItemID uint   `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes"`
	OptionIDs  []uint `json:"option_ids"`
}

type QuickSaleInput struct {
	StoreID       uint
	SessionType   string
	OrderType     string
	ActorID       uint
	CustomerName  string
	CustomerPhone string
	Items         []QuickSaleItem
}

func (s *QuickSaleService) QuickCheckout(in QuickSaleInput) (*models.Order, PaymentStatus, error) {
	if in.ActorID == 0 {
		return nil, PaymentStatus{}, apperrors.Unauthenticatedf("staff credentials are required for quick sales")
	}
	if err := s.Perms.Require(in.ActorID, in.StoreID, models.StaffOrderRoles...); err != nil {
		return nil, PaymentStatus{}, err
	}
	if !models.ValidSessionType(in.SessionType) {
		return nil, PaymentStatus{}, apperrors.Validationf("unknown session type %q", in.SessionType)
	}
	if in.SessionType == models.SessionTypeTable {
		return nil, PaymentStatus{}, apperrors.Validationf("table orders must use the cart checkout flow")
	}
	if !models.ValidOrderType(in.OrderType) {
		return nil, PaymentStatus{}, apperrors.Validationf("unknown order type %q", in.OrderType)
	}
	if len(in.Items) == 0 {
		return nil, PaymentStatus{}, apperrors.Validationf("at least one item is required")
	}

	lines, subTotal, err := s.priceItems(in)
	if err != nil {
		return nil, PaymentStatus{}, err
	}

	vatRate, svcRate, err := storeRates(s.DB, in.StoreID)
	if err != nil {
		return nil, PaymentStatus{}, err
	}

	var orderID uint
	err = s.UoW.ExecuteWithRetry(orderNumberAttempts, func(tx *gorm.DB) error {
		session, err := s.Sessions.openInTx(tx, in.StoreID, in.SessionType, nil, in.CustomerName, in.CustomerPhone)
		if err != nil {
			return err
		}

		now := time.Now()
		orderDate, sequence, number, err := allocateOrderNumber(tx, in.StoreID, now)
		if err != nil {
			return apperrors.Internal(err)
		}

		totals := pricing.Price(subTotal, vatRate, svcRate, decimal.Zero)
		order := models.Order{
			StoreID:           in.StoreID,
			SessionID:         session.ID,
			OrderNumber:       number,
			OrderDate:         orderDate,
			Sequence:          sequence,
			Status:            models.OrderStatusPending,
			OrderType:         in.OrderType,
			TableLabel:        session.TypeLabel(),
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
			return err
		}
		if err := createOrderLines(tx, order.ID, lines); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.Log.Errorf("quick sale: order number allocation for store %d gave up after %d attempts: %v",
				in.StoreID, orderNumberAttempts, err)
		}
		if apperrors.KindOf(err) == apperrors.KindInternal {
			return nil, PaymentStatus{}, apperrors.Internal(err)
		}
		return nil, PaymentStatus{}, err
	}

	order, status, err := hydrateOrder(s.DB, orderID)
	if err != nil {
		s.Log.Errorf("quick sale: order %d committed but reload failed: %v", orderID, err)
		return nil, PaymentStatus{}, err
	}
	if s.Hub != nil {
		s.Hub.OrderCreated(order.StoreID, order)
	}
	return order, status, nil
}

// priceItems batch-loads the referenced menu items, verifies they all
// exist in the store (soft-deleted ones excluded), and fixes unit prices.
// Every missing id is named in the failure.
func (s *QuickSaleService) priceItems(in QuickSaleInput) ([]orderLine, decimal.Decimal, error) {
	ids := make([]uint, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, decimal.Zero, apperrors.Validationf("menu item %d has a non-positive quantity", item.MenuItemID)
		}
		ids = append(ids, item.MenuItemID)
	}

	var menuItems []models.MenuItem
	err := s.DB.Preload("Groups.Options").
		Where("store_id = ? AND id IN ?", in.StoreID, ids).
		Find(&menuItems).Error
	if err != nil {
		return nil, decimal.Zero, apperrors.Internal(err)
	}

	byID := make(map[uint]*models.MenuItem, len(menuItems))
	for i := range menuItems {
		byID[menuItems[i].ID] = &menuItems[i]
	}

	var missing []uint
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		parts := make([]string, len(missing))
		for i, id := range missing {
			parts[i] = fmt.Sprintf("%d", id)
		}
		return nil, decimal.Zero, apperrors.NotFoundf("menu items not found: %s", strings.Join(parts, ", "))
	}

	lines := make([]orderLine, 0, len(in.Items))
	subTotal := decimal.Zero
	for _, item := range in.Items {
		menuItem := byID[item.MenuItemID]
		options := make([]models.CustomizationOption, 0, len(item.OptionIDs))
		unit := menuItem.BasePrice
		for _, optID := range item.OptionIDs {
			opt := findOption(menuItem, optID)
			if opt == nil {
				return nil, decimal.Zero, apperrors.Validationf("option %d does not belong to menu item %d", optID, menuItem.ID)
			}
			unit = unit.Add(opt.AdditionalPrice)
			options = append(options, *opt)
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

func findOption(menuItem *models.MenuItem, optionID uint) *models.CustomizationOption {
	for gi := range menuItem.Groups {
		for oi := range menuItem.Groups[gi].Options {
			if menuItem.Groups[gi].Options[oi].ID == optionID {
				return &menuItem.Groups[gi].Options[oi]
			}
		}
	}
	return nil
}

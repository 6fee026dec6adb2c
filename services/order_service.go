package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/database"
	"github.com/plateful/pos-backend/kds"
	"github.com/plateful/pos-backend/models"
)

const DefaultPageSize = 20

// kitchenStatuses is what the kitchen display shows when no filter is
// given.
var kitchenStatuses = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusPreparing,
	models.OrderStatusReady,
}

// Page is one page of a listing.
type Page struct {
	Items    []models.Order `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int64          `json:"total"`
}

// OrderService serves order reads and status transitions.
type OrderService struct {
	DB  *gorm.DB
	UoW *database.UnitOfWork
	Hub *kds.Hub
	Log *logrus.Logger
}

func NewOrderService(db *gorm.DB, hub *kds.Hub, log *logrus.Logger) *OrderService {
	return &OrderService{DB: db, UoW: database.NewUnitOfWork(db), Hub: hub, Log: log}
}

// Get returns the order and its reconciled payment status.
func (s *OrderService) Get(orderID uint) (*models.Order, PaymentStatus, error) {
	return hydrateOrder(s.DB, orderID)
}

// GetForStore is Get plus the store-scoping rule.
func (s *OrderService) GetForStore(storeID, orderID uint) (*models.Order, PaymentStatus, error) {
	order, err := findStoreOrder(s.DB, storeID, orderID)
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	status, err := loadPaymentStatus(s.DB, order)
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	return order, status, nil
}

// List returns a store's orders, newest first.
func (s *OrderService) List(storeID uint, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := s.DB.Model(&models.Order{}).Where("store_id = ?", storeID).Count(&total).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	var orders []models.Order
	err := s.DB.Preload("Items.Customizations.Option").
		Preload("Items.MenuItem").
		Where("store_id = ?", storeID).
		Order("created_at desc").
		Limit(DefaultPageSize).
		Offset((page - 1) * DefaultPageSize).
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &Page{Items: orders, Page: page, PageSize: DefaultPageSize, Total: total}, nil
}

// ListKitchen returns the kitchen queue, oldest first. An explicit status
// filter narrows it; the default is the active statuses.
func (s *OrderService) ListKitchen(storeID uint, statusFilter models.OrderStatus, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	statuses := kitchenStatuses
	if statusFilter != "" {
		if !models.ValidOrderStatus(statusFilter) {
			return nil, apperrors.Validationf("unknown order status %q", statusFilter)
		}
		statuses = []models.OrderStatus{statusFilter}
	}

	query := s.DB.Model(&models.Order{}).
		Where("store_id = ? AND status IN ?", storeID, statuses)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	var orders []models.Order
	err := s.DB.Preload("Items.Customizations.Option").
		Preload("Items.MenuItem").
		Where("store_id = ? AND status IN ?", storeID, statuses).
		Order("created_at asc").
		Limit(DefaultPageSize).
		Offset((page - 1) * DefaultPageSize).
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &Page{Items: orders, Page: page, PageSize: DefaultPageSize, Total: total}, nil
}

// UpdateStatus applies one lifecycle transition. Entering COMPLETED
// stamps PaidAt once; the stamp is never overwritten.
func (s *OrderService) UpdateStatus(orderID uint, target models.OrderStatus) (*models.Order, PaymentStatus, error) {
	if !models.ValidOrderStatus(target) {
		return nil, PaymentStatus{}, apperrors.Validationf("unknown order status %q", target)
	}

	order, err := findOrder(s.DB, orderID)
	if err != nil {
		return nil, PaymentStatus{}, err
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, PaymentStatus{}, apperrors.InvalidStatef(
			"cannot transition order from %s to %s", order.Status, target)
	}

	err = s.UoW.Execute(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     target,
			"updated_at": time.Now(),
		}
		if target == models.OrderStatusCompleted && order.PaidAt == nil {
			updates["paid_at"] = time.Now()
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

	updated, status, err := hydrateOrder(s.DB, orderID)
	if err != nil {
		s.Log.Errorf("order %d: status change to %s committed but reload failed: %v", orderID, target, err)
		return nil, PaymentStatus{}, err
	}

	if s.Hub != nil {
		s.Hub.OrderStatusChanged(updated.StoreID, updated)
		if target == models.OrderStatusReady {
			s.Hub.OrderReady(updated.StoreID, updated)
		}
	}
	return updated, status, nil
}

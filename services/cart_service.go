package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/database"
	"github.com/plateful/pos-backend/models"
)

// CartService mutates the session's draft cart. Only checkout ever reads
// the cart besides this.
type CartService struct {
	DB  *gorm.DB
	UoW *database.UnitOfWork
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db, UoW: database.NewUnitOfWork(db)}
}

// AddItem appends a cart line with its selected options and refreshes the
// draft subtotal.
func (s *CartService) AddItem(sessionID uint, sessionToken string, menuItemID uint, quantity int, notes string, optionIDs []uint) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, apperrors.Validationf("quantity must be positive")
	}

	var session models.DiningSession
	err := s.DB.First(&session, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("session %d not found", sessionID)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if session.Status == models.SessionStatusClosed {
		return nil, apperrors.InvalidStatef("session %d is closed", sessionID)
	}
	if sessionToken != session.SessionToken {
		return nil, apperrors.Forbiddenf("session token does not match")
	}

	var menuItem models.MenuItem
	err = s.DB.Preload("Groups.Options").
		Where("store_id = ?", session.StoreID).
		First(&menuItem, menuItemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("menu item %d not found", menuItemID)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	options := make([]models.CustomizationOption, 0, len(optionIDs))
	unit := menuItem.BasePrice
	for _, optID := range optionIDs {
		opt := findOption(&menuItem, optID)
		if opt == nil {
			return nil, apperrors.Validationf("option %d does not belong to menu item %d", optID, menuItemID)
		}
		unit = unit.Add(opt.AdditionalPrice)
		options = append(options, *opt)
	}

	var cart models.Cart
	err = s.DB.Where("session_id = ?", sessionID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("cart not found for session %d", sessionID)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	err = s.UoW.Execute(func(tx *gorm.DB) error {
		item := models.CartItem{
			CartID:     cart.ID,
			MenuItemID: menuItemID,
			Quantity:   quantity,
			Notes:      notes,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return apperrors.Internal(err)
		}
		for _, opt := range options {
			cust := models.CartItemCustomization{
				CartItemID:            item.ID,
				CustomizationOptionID: opt.ID,
				CreatedAt:             time.Now(),
			}
			if err := tx.Create(&cust).Error; err != nil {
				return apperrors.Internal(err)
			}
		}

		line := unit.Mul(decimal.NewFromInt(int64(quantity)))
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("sub_total", cart.SubTotal.Add(line)).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(sessionID)
}

// Get returns the cart with items and customizations hydrated.
func (s *CartService) Get(sessionID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.DB.Preload("Items.MenuItem").
		Preload("Items.Customizations.Option").
		Where("session_id = ?", sessionID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("cart not found for session %d", sessionID)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &cart, nil
}

package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/models"
)

// SessionService owns dining-session lifecycle: opening (with an empty
// cart), lookup and closing. Quick sales open sessions through it inside
// their own transaction.
type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

// Open creates a session with a fresh token and an empty cart.
func (s *SessionService) Open(storeID uint, sessionType string, tableID *uint, customerName, customerPhone string) (*models.DiningSession, error) {
	if !models.ValidSessionType(sessionType) {
		return nil, apperrors.Validationf("unknown session type %q", sessionType)
	}
	if sessionType == models.SessionTypeTable && tableID == nil {
		return nil, apperrors.Validationf("table sessions require a table")
	}

	if tableID != nil {
		var table models.Table
		err := s.DB.First(&table, *tableID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("table %d not found", *tableID)
		}
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if table.StoreID != storeID {
			return nil, apperrors.NotFoundf("table %d not found", *tableID)
		}
	}

	var session *models.DiningSession
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		created, err := s.openInTx(tx, storeID, sessionType, tableID, customerName, customerPhone)
		if err != nil {
			return err
		}
		cart := models.Cart{SessionID: created.ID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		if err := tx.Create(&cart).Error; err != nil {
			return apperrors.Internal(err)
		}
		session = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// openInTx creates the session row only, inside the caller's transaction.
func (s *SessionService) openInTx(tx *gorm.DB, storeID uint, sessionType string, tableID *uint, customerName, customerPhone string) (*models.DiningSession, error) {
	session := models.DiningSession{
		StoreID:       storeID,
		TableID:       tableID,
		Type:          sessionType,
		SessionToken:  uuid.NewString(),
		Status:        models.SessionStatusOpen,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := tx.Create(&session).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &session, nil
}

func (s *SessionService) Get(sessionID uint) (*models.DiningSession, error) {
	var session models.DiningSession
	err := s.DB.Preload("Table").First(&session, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("session %d not found", sessionID)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &session, nil
}

// Close marks the session closed. Closed sessions refuse checkout.
func (s *SessionService) Close(sessionID uint) (*models.DiningSession, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionStatusClosed {
		return nil, apperrors.InvalidStatef("session %d is already closed", sessionID)
	}
	session.Status = models.SessionStatusClosed
	session.UpdatedAt = time.Now()
	if err := s.DB.Save(session).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return session, nil
}

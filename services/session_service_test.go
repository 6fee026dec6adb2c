package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/models"
)

func TestOpenSessionCreatesCart(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "0.07", "0.10")

	svc := NewSessionService(db)
	session, err := svc.Open(store.ID, models.SessionTypeTakeaway, nil, "Dewi", "0812000111")
	assert.NoError(t, err)

	assert.Equal(t, models.SessionStatusOpen, session.Status)
	assert.NotEmpty(t, session.SessionToken)
	assert.Equal(t, "Dewi", session.CustomerName)

	var cart models.Cart
	assert.NoError(t, db.Where("session_id = ?", session.ID).First(&cart).Error)
	assert.True(t, cart.SubTotal.IsZero())
}

func TestOpenTableSessionRequiresTable(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "0.07", "0.10")

	svc := NewSessionService(db)
	_, err := svc.Open(store.ID, models.SessionTypeTable, nil, "", "")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestOpenSessionValidatesTableStore(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "0.07", "0.10")
	other := seedStore(t, db, "0.07", "0.10")

	table := models.Table{StoreID: other.ID, Name: "T-1", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	assert.NoError(t, db.Create(&table).Error)

	svc := NewSessionService(db)
	_, err := svc.Open(store.ID, models.SessionTypeTable, &table.ID, "", "")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	session, err := svc.Open(other.ID, models.SessionTypeTable, &table.ID, "", "")
	assert.NoError(t, err)
	assert.Equal(t, table.ID, *session.TableID)
}

func TestOpenSessionUnknownType(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "0.07", "0.10")

	svc := NewSessionService(db)
	_, err := svc.Open(store.ID, "DRIVE_THRU", nil, "", "")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCloseSession(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "0.07", "0.10")

	svc := NewSessionService(db)
	session, err := svc.Open(store.ID, models.SessionTypeTakeaway, nil, "", "")
	assert.NoError(t, err)

	closed, err := svc.Close(session.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.SessionStatusClosed, closed.Status)

	_, err = svc.Close(session.ID)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}

func TestGetSessionNotFound(t *testing.T) {
	db := newTestDB(t)

	svc := NewSessionService(db)
	_, err := svc.Get(404)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

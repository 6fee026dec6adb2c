package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
)

// UnitOfWork wraps every multi-row mutation in one transaction with
// all-or-nothing visibility. The transaction is released on every exit
// path, including panics.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Execute runs fn inside a transaction. Any error from fn rolls back and
// is returned unchanged; commit errors surface as Internal.
func (u *UnitOfWork) Execute(fn func(tx *gorm.DB) error) error {
	tx := u.db.Begin()
	if tx.Error != nil {
		return apperrors.Internal(tx.Error)
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.Internal(err)
	}
	committed = true
	return nil
}

// ExecuteWithRetry re-runs fn in a fresh transaction when the previous
// attempt failed on a uniqueness conflict. Used by checkout so two
// concurrent order-number allocations resolve instead of failing.
func (u *UnitOfWork) ExecuteWithRetry(attempts int, fn func(tx *gorm.DB) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = u.Execute(fn)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}

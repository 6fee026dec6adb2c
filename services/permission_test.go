package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/models"
)

func TestHasAnyRole(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "0", "0")
	cashier := seedStaff(t, db, store.ID, models.RoleCashier)

	perms := NewPermissionChecker(db)

	ok, err := perms.HasAnyRole(cashier.ID, store.ID, models.RoleCashier)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = perms.HasAnyRole(cashier.ID, store.ID, models.RoleOwner, models.RoleAdmin)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = perms.HasAnyRole(cashier.ID, store.ID, models.RoleOwner, models.RoleCashier)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestRoleIsStoreScoped(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "0", "0")
	other := seedStore(t, db, "0", "0")
	owner := seedStaff(t, db, store.ID, models.RoleOwner)

	perms := NewPermissionChecker(db)

	ok, err := perms.HasAnyRole(owner.ID, other.ID, models.RoleOwner)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRequire(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "0", "0")
	cashier := seedStaff(t, db, store.ID, models.RoleCashier)

	perms := NewPermissionChecker(db)

	assert.NoError(t, perms.Require(cashier.ID, store.ID, models.StaffOrderRoles...))

	err := perms.Require(cashier.ID, store.ID, models.RoleOwner)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestRevokedRoleTakesEffectImmediately(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "0", "0")
	cashier := seedStaff(t, db, store.ID, models.RoleCashier)

	perms := NewPermissionChecker(db)
	assert.NoError(t, perms.Require(cashier.ID, store.ID, models.RoleCashier))

	assert.NoError(t, db.Where("user_id = ?", cashier.ID).Delete(&models.StaffRole{}).Error)

	err := perms.Require(cashier.ID, store.ID, models.RoleCashier)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

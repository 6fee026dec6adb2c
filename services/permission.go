package services

import (
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/models"
)

// PermissionChecker answers role questions from staff_roles rows, so a
// revoked role takes effect on the next request.
type PermissionChecker struct {
	db *gorm.DB
}

func NewPermissionChecker(db *gorm.DB) *PermissionChecker {
	return &PermissionChecker{db: db}
}

// HasAnyRole reports whether the user holds at least one of the given
// roles in the store.
func (p *PermissionChecker) HasAnyRole(userID, storeID uint, roles ...string) (bool, error) {
	var count int64
	err := p.db.Model(&models.StaffRole{}).
		Where("user_id = ? AND store_id = ? AND role IN ?", userID, storeID, roles).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return count > 0, nil
}

// Require fails with Forbidden when the user holds none of the roles.
func (p *PermissionChecker) Require(userID, storeID uint, roles ...string) error {
	ok, err := p.HasAnyRole(userID, storeID, roles...)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Forbiddenf("user does not have the required role for this store")
	}
	return nil
}

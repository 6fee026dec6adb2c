package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/plateful/pos-backend/models"
)

// allocateOrderNumber reserves the next per-store, per-day sequence.
// The count read here races with concurrent checkouts; the unique
// (store_id, order_date, sequence) index rejects the loser and the
// caller's transaction retries with a fresh count.
func allocateOrderNumber(tx *gorm.DB, storeID uint, now time.Time) (orderDate int, sequence int, number string, err error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	err = tx.Model(&models.Order{}).
		Where("store_id = ? AND created_at >= ?", storeID, dayStart).
		Count(&count).Error
	if err != nil {
		return 0, 0, "", err
	}

	orderDate = now.Year()*10000 + int(now.Month())*100 + now.Day()
	sequence = int(count) + 1
	// %03d zero-pads to three digits and keeps growing past 999.
	number = fmt.Sprintf("%d-%03d", orderDate, sequence)
	return orderDate, sequence, number, nil
}

package store

import (
	"time"

	"github.com/jinzhu/gorm"

	"refectory/internal/models"
)

// NonEmptyOrderSlots returns, per guest, the meal slots that have an order
// with at least one item on date. An order with zero items counts as no
// selection.
func (s *Store) NonEmptyOrderSlots(date time.Time, guestIDs []uint) (map[uint]map[models.MealTime]bool, error) {
	result := make(map[uint]map[models.MealTime]bool, len(guestIDs))
	if len(guestIDs) == 0 {
		return result, nil
	}
	var orders []models.Order
	err := s.db.Preload("Items").
		Where("date = ? AND guest_id IN (?)", models.DateOf(date), guestIDs).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if len(o.Items) == 0 {
			continue
		}
		slots := result[o.GuestID]
		if slots == nil {
			slots = make(map[models.MealTime]bool)
			result[o.GuestID] = slots
		}
		slots[o.MealTime] = true
	}
	return result, nil
}

// NonEmptyOrderSlotsForGuest is the single-guest form, used for the re-check
// immediately before a bulk write.
func (s *Store) NonEmptyOrderSlotsForGuest(guestID uint, date time.Time) (map[models.MealTime]bool, error) {
	all, err := s.NonEmptyOrderSlots(date, []uint{guestID})
	if err != nil {
		return nil, err
	}
	if slots, ok := all[guestID]; ok {
		return slots, nil
	}
	return map[models.MealTime]bool{}, nil
}

// ReplaceOrderItems sets the item list of the (guest, date, slot) order,
// creating the order when absent. The previous item set is fully replaced.
func (s *Store) ReplaceOrderItems(guestID uint, date time.Time, slot models.MealTime, menuItemIDs []uint) error {
	order := models.Order{
		GuestID:  guestID,
		Date:     models.DateOf(date),
		MealTime: slot,
	}
	if err := s.db.Where(models.Order{
		GuestID:  guestID,
		Date:     models.DateOf(date),
		MealTime: slot,
	}).FirstOrCreate(&order).Error; err != nil {
		return err
	}
	if err := s.db.Unscoped().Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	for _, id := range menuItemIDs {
		item := models.OrderItem{OrderID: order.ID, MenuItemID: id}
		if err := s.db.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteOrder removes the (guest, date, slot) order and its items. Used when
// a guest submits an empty selection for a slot.
func (s *Store) DeleteOrder(guestID uint, date time.Time, slot models.MealTime) error {
	var order models.Order
	q := s.db.Where("guest_id = ? AND date = ? AND meal_time = ?",
		guestID, models.DateOf(date), slot).First(&order)
	if q.RecordNotFound() {
		return nil
	}
	if q.Error != nil {
		return q.Error
	}
	if err := s.db.Unscoped().Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return s.db.Unscoped().Delete(&order).Error
}

// SubmitDay saves a guest's whole day in one transaction: a non-empty
// selection replaces the slot's order, an empty one deletes it. This is the
// only path that may downgrade an existing selection, and only for the
// guest's own orders.
func (s *Store) SubmitDay(guestID uint, date time.Time, selections map[models.MealTime][]uint) error {
	return s.Transaction(func(tx *Store) error {
		for _, slot := range models.MealTimes {
			ids := selections[slot]
			if len(ids) > 0 {
				if err := tx.ReplaceOrderItems(guestID, date, slot, ids); err != nil {
					return err
				}
			} else {
				if err := tx.DeleteOrder(guestID, date, slot); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// OrdersOn loads every order for date with items and dishes preloaded, for
// the waiter and kitchen reports.
func (s *Store) OrdersOn(date time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.MenuItem").
		Preload("Items.MenuItem.Dish").
		Where("date = ?", models.DateOf(date)).
		Find(&orders).Error
	return orders, err
}

// OrdersForGuestOn loads one guest's orders for date with items preloaded.
func (s *Store) OrdersForGuestOn(guestID uint, date time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Items").
		Preload("Items.MenuItem").
		Where("guest_id = ? AND date = ?", guestID, models.DateOf(date)).
		Find(&orders).Error
	return orders, err
}

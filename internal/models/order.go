package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Order is a guest's selection for one meal slot on one date. Unique on
// (guest, date, meal); an order with zero items counts as no selection.
type Order struct {
	gorm.Model
	GuestID  uint      `gorm:"unique_index:idx_orders_guest_date_meal"`
	Date     time.Time `gorm:"type:date;unique_index:idx_orders_guest_date_meal"`
	MealTime MealTime  `gorm:"size:10;unique_index:idx_orders_guest_date_meal"`

	Items []OrderItem `gorm:"foreignkey:OrderID"`
}

// OrderItem references one chosen menu item. Saving a selection replaces the
// order's whole item set; there is no incremental merge.
type OrderItem struct {
	gorm.Model
	OrderID    uint `gorm:"index"`
	MenuItemID uint
	MenuItem   MenuItem
}

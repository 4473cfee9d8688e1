package store

import (
	"time"

	"github.com/jinzhu/gorm"

	"refectory/internal/models"
)

// DailyMenuFor resolves target through the rotation and loads the menu for
// that (cycle, day, diet) with its items and dishes, items ordered the way
// the hall prints them. Returns ErrNoCycles or ErrNoDailyMenu when the
// rotation or the menu is not configured.
func (s *Store) DailyMenuFor(target time.Time, diet models.DietKind) (*models.DailyMenu, error) {
	cycle, day, err := s.ResolveDate(target)
	if err != nil {
		return nil, err
	}
	return s.DailyMenu(cycle.ID, day, diet)
}

// DailyMenu loads one day's menu by its natural key.
func (s *Store) DailyMenu(cycleID uint, dayIndex int, diet models.DietKind) (*models.DailyMenu, error) {
	var menu models.DailyMenu
	q := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("meal_time, order_index, id")
		}).
		Preload("Items.Dish").
		Where("cycle_id = ? AND day_index = ? AND diet_kind = ?", cycleID, dayIndex, diet).
		First(&menu)
	if q.RecordNotFound() {
		return nil, ErrNoDailyMenu
	}
	if q.Error != nil {
		return nil, q.Error
	}
	return &menu, nil
}

// GetOrCreateDailyMenu opens the menu template for editing, creating an
// empty one when the day has not been filled in yet.
func (s *Store) GetOrCreateDailyMenu(cycleID uint, dayIndex int, diet models.DietKind) (*models.DailyMenu, error) {
	menu, err := s.DailyMenu(cycleID, dayIndex, diet)
	if err == nil {
		return menu, nil
	}
	if err != ErrNoDailyMenu {
		return nil, err
	}
	created := models.DailyMenu{CycleID: cycleID, DayIndex: dayIndex, DietKind: diet}
	if err := s.db.Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// AddMenuItem appends a dish to the end of its (meal, category) section.
func (s *Store) AddMenuItem(menuID uint, meal models.MealTime, category string, dishID uint, isCommon bool) (*models.MenuItem, error) {
	var last models.MenuItem
	next := 1
	q := s.db.
		Where("daily_menu_id = ? AND meal_time = ? AND category = ?", menuID, meal, category).
		Order("order_index desc").
		First(&last)
	if q.Error != nil && !q.RecordNotFound() {
		return nil, q.Error
	}
	if !q.RecordNotFound() {
		next = last.OrderIndex + 1
	}
	item := models.MenuItem{
		DailyMenuID: menuID,
		MealTime:    meal,
		Category:    category,
		DishID:      dishID,
		OrderIndex:  next,
		IsCommon:    isCommon,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

package models

import "github.com/jinzhu/gorm"

// MenuCycle is a fixed-length repeating menu template, normally 7 days.
// Several cycles exist (typically two) and alternate week to week.
type MenuCycle struct {
	gorm.Model
	Name      string `gorm:"size:100"`
	DaysCount int    `gorm:"default:7"`
}

// DailyMenu is the menu for one day of a cycle for one dietary category.
// At most one exists per (cycle, day, diet).
type DailyMenu struct {
	gorm.Model
	CycleID  uint     `gorm:"unique_index:idx_daily_menus_cycle_day_diet"`
	DayIndex int      `gorm:"unique_index:idx_daily_menus_cycle_day_diet"`
	DietKind DietKind `gorm:"size:10;unique_index:idx_daily_menus_cycle_day_diet"`

	Items []MenuItem `gorm:"foreignkey:DailyMenuID"`
}

// MenuItem is one line of a daily menu: a dish offered in a meal slot under a
// free-text section heading. Common items are given to every guest and are
// never part of a choice; non-common items are the selectable alternatives
// within their (meal, category) group.
type MenuItem struct {
	gorm.Model
	DailyMenuID uint     `gorm:"index"`
	MealTime    MealTime `gorm:"size:10"`
	Category    string   `gorm:"size:50"`
	DishID      uint
	Dish        Dish
	OrderIndex  int  `gorm:"default:1"`
	IsCommon    bool `gorm:"default:false"`
}

package models

import "github.com/jinzhu/gorm"

// Dish is a catalog entry. Nutrition columns are nullable: the catalog is
// seeded incrementally and many dishes lack laboratory values.
type Dish struct {
	gorm.Model
	Name string `gorm:"size:200;not null"`

	// ShortName, when set, is what waiters and the kitchen see instead of
	// the full name.
	ShortName string `gorm:"size:100"`

	IsDiet bool `gorm:"default:false"`

	Proteins *float64
	Fats     *float64
	Carbs    *float64
	Kcal     *float64
	OutputG  *int // portion weight, grams
}

// KitchenName returns the name used on waiter and kitchen reports.
func (d *Dish) KitchenName() string {
	if d.ShortName != "" {
		return d.ShortName
	}
	return d.Name
}

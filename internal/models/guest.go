package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Guest represents a resident of the resort with a stay window and the
// per-meal permissions used by the eligibility rules.
type Guest struct {
	gorm.Model
	FullName  string    `gorm:"size:200;not null"`
	StartDate time.Time `gorm:"type:date"`
	EndDate   time.Time `gorm:"type:date"`

	// AccessCode is the short numeric code the guest logs in with.
	AccessCode string   `gorm:"size:10;unique_index"`
	DietKind   DietKind `gorm:"size:10;default:'B'"`

	// Ordinary-day meal permissions.
	BreakfastAllowed bool `gorm:"default:true"`
	LunchAllowed     bool `gorm:"default:true"`
	DinnerAllowed    bool `gorm:"default:true"`

	// Paid add-on meals for the departure day only. On that day the ordinary
	// lunch/dinner flags do not apply; these are the sole gate.
	DepartureLunch  bool `gorm:"default:false"`
	DepartureDinner bool `gorm:"default:false"`
}

// ActiveOn reports whether date falls inside the guest's stay window.
func (g *Guest) ActiveOn(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(g.StartDate)) && !d.After(DateOf(g.EndDate))
}

package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Dining-hall capacity. Tables are numbered 1..MaxTableNumber, each with
// PlacesPerTable numbered places.
const (
	MaxTableNumber = 100
	PlacesPerTable = 4
)

// DiningTable is a numbered table in the hall.
type DiningTable struct {
	gorm.Model
	Number      int `gorm:"unique_index"`
	PlacesCount int `gorm:"default:4"`
}

// SeatAssignment places a guest at a table for a validity window. A guest can
// have several assignments over a stay when they are moved.
type SeatAssignment struct {
	gorm.Model
	GuestID     uint `gorm:"index"`
	TableID     uint `gorm:"index"`
	Table       DiningTable
	PlaceNumber int
	StartDate   time.Time `gorm:"type:date"`
	EndDate     time.Time `gorm:"type:date"`
}

// CoversDate reports whether the assignment is in effect on date.
func (s *SeatAssignment) CoversDate(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(s.StartDate)) && !d.After(DateOf(s.EndDate))
}

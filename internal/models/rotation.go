package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// DefaultBaseDate is the Monday the first cycle started on. Used when the
// settings row is created for the first time.
var DefaultBaseDate = time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)

// RotationConfig is the singleton rotation-settings row. BaseDate is the
// calendar date that maps to day 1 of the first cycle in rotation order.
// ForcedCycleID, when non-zero, pins the rotation to one cycle regardless of
// date. Mutated only through the settings operation.
type RotationConfig struct {
	gorm.Model
	BaseDate      time.Time `gorm:"type:date"`
	ForcedCycleID uint
}

// Package eligibility decides which meal slots a guest may order on a date.
package eligibility

import (
	"time"

	"refectory/internal/models"
)

// Meals is the per-slot answer for one guest and date.
type Meals struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
}

// Allows reports whether slot is permitted.
func (m Meals) Allows(slot models.MealTime) bool {
	switch slot {
	case models.MealBreakfast:
		return m.Breakfast
	case models.MealLunch:
		return m.Lunch
	case models.MealDinner:
		return m.Dinner
	}
	return false
}

// Any reports whether at least one slot is permitted.
func (m Meals) Any() bool {
	return m.Breakfast || m.Lunch || m.Dinner
}

// AllowedMeals returns the slots the guest may order for target.
//
// On the departure day (target equals the guest's end date) breakfast follows
// the ordinary flag, while lunch and dinner are gated solely by the paid
// departure add-ons — a guest allowed ordinary lunch every stay day is not
// allowed lunch on departure day unless the paid flag is set. Every other day
// mirrors the three ordinary flags.
//
// Callers are responsible for only passing dates inside the guest's stay
// window; dates outside it fall through to the ordinary-day rules unchecked.
func AllowedMeals(g models.Guest, target time.Time) Meals {
	if models.SameDate(target, g.EndDate) {
		return Meals{
			Breakfast: g.BreakfastAllowed,
			Lunch:     g.DepartureLunch,
			Dinner:    g.DepartureDinner,
		}
	}
	return Meals{
		Breakfast: g.BreakfastAllowed,
		Lunch:     g.LunchAllowed,
		Dinner:    g.DinnerAllowed,
	}
}

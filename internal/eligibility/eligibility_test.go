package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"refectory/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stayGuest() models.Guest {
	return models.Guest{
		FullName:         "Ivanova A.P.",
		StartDate:        date(2025, 12, 10),
		EndDate:          date(2025, 12, 20),
		DietKind:         models.DietB,
		BreakfastAllowed: true,
		LunchAllowed:     true,
		DinnerAllowed:    true,
	}
}

func TestAllowedMealsOrdinaryDay(t *testing.T) {
	g := stayGuest()
	m := AllowedMeals(g, date(2025, 12, 15))
	assert.Equal(t, Meals{Breakfast: true, Lunch: true, Dinner: true}, m)

	g.LunchAllowed = false
	m = AllowedMeals(g, date(2025, 12, 15))
	assert.Equal(t, Meals{Breakfast: true, Lunch: false, Dinner: true}, m)
}

func TestAllowedMealsDepartureDay(t *testing.T) {
	g := stayGuest() // all ordinary flags on, no paid add-ons

	m := AllowedMeals(g, date(2025, 12, 20))
	assert.Equal(t, Meals{Breakfast: true, Lunch: false, Dinner: false}, m,
		"ordinary lunch/dinner flags must not apply on the departure day")

	g.DepartureLunch = true
	m = AllowedMeals(g, date(2025, 12, 20))
	assert.True(t, m.Lunch)
	assert.False(t, m.Dinner)

	g.DepartureDinner = true
	g.BreakfastAllowed = false
	m = AllowedMeals(g, date(2025, 12, 20))
	assert.Equal(t, Meals{Breakfast: false, Lunch: true, Dinner: true}, m)
}

func TestAllowedMealsDepartureIgnoresOrdinaryFlags(t *testing.T) {
	// Flipping the ordinary lunch/dinner flags must not change the
	// departure-day answer.
	g := stayGuest()
	g.DepartureLunch = true

	before := AllowedMeals(g, g.EndDate)
	g.LunchAllowed = false
	g.DinnerAllowed = false
	after := AllowedMeals(g, g.EndDate)
	assert.Equal(t, before, after)
}

func TestAllowedMealsTimeOfDayIgnored(t *testing.T) {
	g := stayGuest()
	// End date comparison is by calendar date, not instant.
	evening := time.Date(2025, 12, 20, 21, 30, 0, 0, time.UTC)
	m := AllowedMeals(g, evening)
	assert.False(t, m.Lunch)
}

func TestMealsAllows(t *testing.T) {
	m := Meals{Breakfast: true, Dinner: true}
	assert.True(t, m.Allows(models.MealBreakfast))
	assert.False(t, m.Allows(models.MealLunch))
	assert.True(t, m.Allows(models.MealDinner))
	assert.False(t, m.Allows(models.MealTime("snack")))
	assert.True(t, m.Any())
	assert.False(t, Meals{}.Any())
}

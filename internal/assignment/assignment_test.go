package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"refectory/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func item(id uint, meal models.MealTime, orderIndex int, common bool) models.MenuItem {
	it := models.MenuItem{MealTime: meal, OrderIndex: orderIndex, IsCommon: common}
	it.ID = id
	return it
}

func TestRequiredMeals(t *testing.T) {
	items := []models.MenuItem{
		item(1, models.MealBreakfast, 1, true), // common only
		item(2, models.MealBreakfast, 2, true),
		item(3, models.MealLunch, 1, false), // one real choice
		item(4, models.MealLunch, 2, true),
	}
	required := RequiredMeals(items)
	assert.False(t, required[models.MealBreakfast],
		"a slot with only common items is never required")
	assert.True(t, required[models.MealLunch])
	assert.False(t, required[models.MealDinner], "empty slot is never required")
}

func TestIsMissing(t *testing.T) {
	g := models.Guest{
		StartDate:        date(2025, 12, 10),
		EndDate:          date(2025, 12, 20),
		BreakfastAllowed: true,
		LunchAllowed:     true,
		DinnerAllowed:    false,
	}
	required := map[models.MealTime]bool{
		models.MealLunch:  true,
		models.MealDinner: true,
	}

	// No orders at all: the eligible lunch slot is deficient.
	assert.True(t, IsMissing(g, date(2025, 12, 15), required, nil))

	// Lunch ordered; dinner is required but the guest is not eligible for
	// it, so nothing is missing.
	ordered := map[models.MealTime]bool{models.MealLunch: true}
	assert.False(t, IsMissing(g, date(2025, 12, 15), required, ordered))

	// Breakfast not required (all common), lunch required and unordered.
	req := map[models.MealTime]bool{models.MealLunch: true}
	assert.True(t, IsMissing(g, date(2025, 12, 15), req, map[models.MealTime]bool{}))
}

func TestIsMissingDepartureDay(t *testing.T) {
	g := models.Guest{
		StartDate:        date(2025, 12, 10),
		EndDate:          date(2025, 12, 20),
		BreakfastAllowed: true,
		LunchAllowed:     true, // irrelevant on departure day
	}
	required := map[models.MealTime]bool{
		models.MealBreakfast: true,
		models.MealLunch:     true,
	}

	// On the departure day lunch is gated by the unpaid departure flag, so
	// only breakfast can be deficient.
	ordered := map[models.MealTime]bool{models.MealBreakfast: true}
	assert.False(t, IsMissing(g, date(2025, 12, 20), required, ordered))

	g.DepartureLunch = true
	assert.True(t, IsMissing(g, date(2025, 12, 20), required, ordered))
}

func TestDefaultSelections(t *testing.T) {
	items := []models.MenuItem{
		item(10, models.MealLunch, 2, false),
		item(11, models.MealLunch, 1, false), // lowest order index wins
		item(12, models.MealLunch, 1, true),  // common never chosen
		item(13, models.MealDinner, 1, false),
		item(14, models.MealBreakfast, 1, true),
	}
	sel := DefaultSelections(items)
	assert.Equal(t, []uint{11}, sel[models.MealLunch])
	assert.Equal(t, []uint{13}, sel[models.MealDinner])
	_, ok := sel[models.MealBreakfast]
	assert.False(t, ok)
}

func TestDefaultSelectionsTieBreaksOnID(t *testing.T) {
	items := []models.MenuItem{
		item(21, models.MealLunch, 1, false),
		item(20, models.MealLunch, 1, false),
	}
	sel := DefaultSelections(items)
	assert.Equal(t, []uint{20}, sel[models.MealLunch])
}

func TestFilterSelections(t *testing.T) {
	items := []models.MenuItem{
		item(1, models.MealLunch, 1, false),
		item(2, models.MealLunch, 2, true),
		item(3, models.MealDinner, 1, false),
	}
	sel := Selections{
		models.MealLunch:  {1, 2, 99}, // common and unknown ids dropped
		models.MealDinner: {1},        // lunch item in the dinner slot dropped
	}
	filtered := FilterSelections(sel, items)
	assert.Equal(t, []uint{1}, filtered[models.MealLunch])
	assert.Empty(t, filtered[models.MealDinner])
	assert.False(t, filtered.Empty())

	assert.True(t, FilterSelections(Selections{models.MealLunch: {99}}, items).Empty())
}

package models

// MealTime identifies a serving slot in the dining hall. A historical snack
// slot was removed and intentionally has no constant here.
type MealTime string

const (
	MealBreakfast MealTime = "breakfast"
	MealLunch     MealTime = "lunch"
	MealDinner    MealTime = "dinner"
)

// MealTimes lists the slots in serving order.
var MealTimes = []MealTime{MealBreakfast, MealLunch, MealDinner}

// MealServedAt maps a slot to its wall-clock serving time. Breakfast is
// served on a rolling basis and has no fixed time.
var MealServedAt = map[MealTime]string{
	MealBreakfast: "",
	MealLunch:     "14:00",
	MealDinner:    "19:00",
}

// ValidMealTime reports whether m is one of the served slots.
func ValidMealTime(m MealTime) bool {
	for _, t := range MealTimes {
		if t == m {
			return true
		}
	}
	return false
}

// DietKind is one of the three dietary categories guests are assigned to.
// Each kind has its own daily menu per cycle day.
type DietKind string

const (
	DietP  DietKind = "P"  // esophageal
	DietB  DietKind = "B"  // regular
	DietBD DietKind = "BD" // diabetic
)

// DietKinds lists the categories in display order.
var DietKinds = []DietKind{DietP, DietB, DietBD}

// ValidDietKind reports whether k is a known dietary category.
func ValidDietKind(k DietKind) bool {
	for _, d := range DietKinds {
		if d == k {
			return true
		}
	}
	return false
}

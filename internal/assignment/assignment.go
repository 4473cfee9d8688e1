// Package assignment detects guests without a submitted order and can assign
// a chosen or default selection to all of them in one pass.
package assignment

import (
	"sort"
	"time"

	"refectory/internal/eligibility"
	"refectory/internal/models"
)

// Selections maps a meal slot to the chosen menu item ids for it. Staff pick
// them on the catch-up screen, or DefaultSelections derives them.
type Selections map[models.MealTime][]uint

// Empty reports whether no slot has any selection.
func (s Selections) Empty() bool {
	for _, ids := range s {
		if len(ids) > 0 {
			return false
		}
	}
	return true
}

// RequiredMeals returns the slots of a daily menu that actually carry a
// choice: at least one selectable (non-common) item. Slots with only common
// items, or no items at all, offer nothing to pick, so a missing order there
// is not a deficiency.
func RequiredMeals(items []models.MenuItem) map[models.MealTime]bool {
	required := make(map[models.MealTime]bool)
	for _, it := range items {
		if !it.IsCommon {
			required[it.MealTime] = true
		}
	}
	return required
}

// IsMissing reports whether the guest lacks a non-empty order for any
// required slot they are eligible for on date. Ineligible slots are skipped:
// ineligibility is never "missing". The answer is binary per guest and
// short-circuits on the first deficiency.
func IsMissing(g models.Guest, date time.Time, required map[models.MealTime]bool, ordered map[models.MealTime]bool) bool {
	allowed := eligibility.AllowedMeals(g, date)
	for _, slot := range models.MealTimes {
		if !required[slot] || !allowed.Allows(slot) {
			continue
		}
		if !ordered[slot] {
			return true
		}
	}
	return false
}

// DefaultSelections picks the first selectable item of each slot, ordered by
// display order then identity — the deterministic fallback when staff do not
// hand-pick dishes.
func DefaultSelections(items []models.MenuItem) Selections {
	bySlot := make(map[models.MealTime][]models.MenuItem)
	for _, it := range items {
		if it.IsCommon {
			continue
		}
		bySlot[it.MealTime] = append(bySlot[it.MealTime], it)
	}
	sel := make(Selections, len(bySlot))
	for slot, list := range bySlot {
		sort.Slice(list, func(i, j int) bool {
			if list[i].OrderIndex != list[j].OrderIndex {
				return list[i].OrderIndex < list[j].OrderIndex
			}
			return list[i].ID < list[j].ID
		})
		sel[slot] = []uint{list[0].ID}
	}
	return sel
}

// FilterSelections drops ids that are not selectable items of their slot:
// unknown ids, common items, and items of another meal. Stale staff form
// submissions are filtered silently rather than reported.
func FilterSelections(sel Selections, items []models.MenuItem) Selections {
	selectable := make(map[models.MealTime]map[uint]bool)
	for _, it := range items {
		if it.IsCommon {
			continue
		}
		if selectable[it.MealTime] == nil {
			selectable[it.MealTime] = make(map[uint]bool)
		}
		selectable[it.MealTime][it.ID] = true
	}
	filtered := make(Selections)
	for slot, ids := range sel {
		for _, id := range ids {
			if selectable[slot][id] {
				filtered[slot] = append(filtered[slot], id)
			}
		}
	}
	return filtered
}

package rotation

import (
	"time"

	"refectory/internal/models"
)

// Config is the snapshot of rotation settings threaded into Resolve. It is
// loaded from the settings row once per operation rather than read through a
// process-wide global, so a resolution is re-derivable from the same inputs
// at any time.
type Config struct {
	BaseDate      time.Time
	ForcedCycleID uint
}

// Resolve maps a calendar date to the active menu cycle and its 1-based
// day-of-cycle index (Monday=1 .. Sunday=7).
//
// When the config forces a cycle, that cycle wins regardless of date.
// Otherwise cycles alternate weekly from BaseDate: the week index is a floor
// division so dates before the base still rotate correctly, and the cycle
// index is a non-negative modulo over the cycle list.
//
// Returns (nil, 0) when no cycles are configured; callers surface that as
// "no menu configured" rather than an error.
func Resolve(cycles []models.MenuCycle, cfg Config, target time.Time) (*models.MenuCycle, int) {
	if len(cycles) == 0 {
		return nil, 0
	}

	day := isoWeekday(target)

	if cfg.ForcedCycleID != 0 {
		for i := range cycles {
			if cycles[i].ID == cfg.ForcedCycleID {
				return &cycles[i], clampDay(day, &cycles[i])
			}
		}
		// Forced cycle no longer exists; fall back to alternation.
	}

	diff := models.DaysBetween(cfg.BaseDate, target)
	week := floorDiv(diff, 7)
	idx := week % len(cycles)
	if idx < 0 {
		idx += len(cycles)
	}
	cycle := &cycles[idx]
	return cycle, clampDay(day, cycle)
}

// isoWeekday maps time.Weekday (Sunday=0) to the 1-based Monday-first index.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}

// clampDay caps the weekday index at the cycle's configured length. With
// 7-day cycles this never fires; it guards shortened cycles.
func clampDay(day int, c *models.MenuCycle) int {
	if c.DaysCount > 0 && day > c.DaysCount {
		return c.DaysCount
	}
	return day
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

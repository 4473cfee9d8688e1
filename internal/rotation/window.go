package rotation

import "time"

// SelectionWindow bounds when orders for Target may be edited. The window
// for day C runs from C-2 17:00 up to (not including) C-1 11:00, giving the
// kitchen a full day of lead time after it closes.
type SelectionWindow struct {
	Target time.Time
	Opens  time.Time
	Closes time.Time
}

// ActiveTarget returns the date whose selection window contains now. Orders
// are always for at least tomorrow, so only the next four days are checked.
// ok is false when no window is currently open.
func ActiveTarget(now time.Time) (w SelectionWindow, ok bool) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	for delta := 1; delta <= 4; delta++ {
		target := today.AddDate(0, 0, delta)
		opens := target.AddDate(0, 0, -2).Add(17 * time.Hour)
		closes := target.AddDate(0, 0, -1).Add(11 * time.Hour)
		if !now.Before(opens) && now.Before(closes) {
			return SelectionWindow{Target: target, Opens: opens, Closes: closes}, true
		}
	}
	return SelectionWindow{}, false
}

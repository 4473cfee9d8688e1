package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"refectory/internal/assignment"
	"refectory/internal/eligibility"
	"refectory/internal/models"
	"refectory/internal/monitoring"
	"refectory/internal/rotation"
	"refectory/internal/store"
)

// notifyBoard recounts the missing orders for date and pushes the totals to
// the hall screens. A count failure still announces the change.
func (s *Server) notifyBoard(date time.Time) {
	event := BoardEvent{
		Kind: "orders_changed",
		Date: date.Format("2006-01-02"),
	}
	if byDiet, err := s.assign.MissingByDiet(date); err == nil {
		event.ByDiet = make(map[string]int, len(byDiet))
		for diet, guests := range byDiet {
			event.ByDiet[string(diet)] = len(guests)
			event.TotalMissing += len(guests)
		}
	}
	s.board.Notify(event)
}

// ListMissing returns, per diet, the active guests still without a submitted
// order for the date. Defaults to the currently open selection window's
// target date, falling back to tomorrow.
func (s *Server) ListMissing(c *gin.Context) {
	if _, err := s.store.CleanupDepartedGuests(time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var date time.Time
	if raw := c.Query("date"); raw != "" {
		var err error
		if date, err = models.ParseDate(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
	} else if w, ok := rotation.ActiveTarget(time.Now()); ok {
		date = w.Target
	} else {
		date = models.DateOf(time.Now()).AddDate(0, 0, 1)
	}

	byDiet, err := s.assign.MissingByDiet(date)
	if err == store.ErrNoCycles {
		c.JSON(http.StatusOK, gin.H{
			"date":    date.Format("2006-01-02"),
			"message": "no menu cycles configured",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type entry struct {
		GuestID  uint   `json:"guest_id"`
		FullName string `json:"full_name"`
		Table    int    `json:"table,omitempty"`
		Place    int    `json:"place,omitempty"`
	}
	stats := gin.H{}
	total := 0
	for _, diet := range models.DietKinds {
		guests, ok := byDiet[diet]
		if !ok {
			continue
		}
		entries := make([]entry, 0, len(guests))
		for _, g := range guests {
			e := entry{GuestID: g.ID, FullName: g.FullName}
			if seat, err := s.store.SeatFor(g.ID, date); err == nil {
				e.Table = seat.Table.Number
				e.Place = seat.PlaceNumber
			}
			entries = append(entries, e)
		}
		stats[string(diet)] = entries
		total += len(entries)
	}

	c.JSON(http.StatusOK, gin.H{
		"date":          date.Format("2006-01-02"),
		"total_missing": total,
		"by_diet":       stats,
	})
}

// BulkAssign fills the deficient slots of every missing guest of a diet with
// the supplied selections, or the per-slot defaults when none are given.
func (s *Server) BulkAssign(c *gin.Context) {
	var req struct {
		Date       string                     `json:"date" binding:"required"`
		DietKind   string                     `json:"diet_kind" binding:"required"`
		Selections map[models.MealTime][]uint `json:"selections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	if _, err := s.store.CleanupDepartedGuests(time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	diets := []models.DietKind{models.DietKind(req.DietKind)}
	if req.DietKind == "all" {
		diets = models.DietKinds
	} else if !models.ValidDietKind(diets[0]) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown diet kind"})
		return
	}

	var sel assignment.Selections
	if len(req.Selections) > 0 {
		sel = assignment.Selections(req.Selections)
	}

	updated := 0
	unconfigured := 0
	for _, diet := range diets {
		n, err := s.assign.AssignDefaults(date, diet, sel)
		if err == store.ErrNoCycles || err == store.ErrNoDailyMenu {
			unconfigured++
			continue
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		updated += n
	}

	if updated > 0 {
		s.notifyBoard(date)
	}
	resp := gin.H{
		"date":    date.Format("2006-01-02"),
		"updated": updated,
	}
	if unconfigured == len(diets) {
		resp["message"] = "no menu configured for this date; nothing was assigned"
	}
	c.JSON(http.StatusOK, resp)
}

// GetDay returns the authenticated guest's current selections for ?date=,
// one entry per slot that has a non-empty order.
func (s *Server) GetDay(c *gin.Context) {
	guestID := c.GetUint(guestIDKey)
	date := parseDateParam(c)

	orders, err := s.store.OrdersForGuestOn(guestID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	selections := make(map[models.MealTime][]uint)
	for _, order := range orders {
		for _, oi := range order.Items {
			selections[order.MealTime] = append(selections[order.MealTime], oi.MenuItemID)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"date":       date.Format("2006-01-02"),
		"selections": selections,
	})
}

// SubmitDay saves the authenticated guest's whole day. Selections are
// validated against the day's menu for the guest's diet; ineligible meals
// and stale item ids are dropped silently. An empty selection for a slot
// removes that slot's order.
func (s *Server) SubmitDay(c *gin.Context) {
	guestID := c.GetUint(guestIDKey)
	guest, err := s.store.Guest(guestID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown guest"})
		return
	}

	var req struct {
		Date       string                     `json:"date" binding:"required"`
		Selections map[models.MealTime][]uint `json:"selections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	if date.After(models.DateOf(guest.EndDate)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "date is past the end of the stay"})
		return
	}
	if w, ok := rotation.ActiveTarget(time.Now()); !ok || !models.SameDate(w.Target, date) {
		c.JSON(http.StatusForbidden, gin.H{"error": "the selection window for this date is closed"})
		return
	}

	menu, err := s.store.DailyMenuFor(date, guest.DietKind)
	if err == store.ErrNoCycles || err == store.ErrNoDailyMenu {
		c.JSON(http.StatusOK, gin.H{"message": "no menu configured for this date"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Guests may pick any item shown in their sections, common ones
	// included; only ids foreign to the slot are dropped.
	valid := make(map[models.MealTime]map[uint]bool)
	for _, it := range menu.Items {
		if valid[it.MealTime] == nil {
			valid[it.MealTime] = make(map[uint]bool)
		}
		valid[it.MealTime][it.ID] = true
	}
	allowed := eligibility.AllowedMeals(guest, date)
	selections := make(map[models.MealTime][]uint)
	for _, slot := range models.MealTimes {
		if !allowed.Allows(slot) {
			continue
		}
		for _, id := range req.Selections[slot] {
			if valid[slot][id] {
				selections[slot] = append(selections[slot], id)
			}
		}
	}

	if err := s.store.SubmitDay(guestID, date, selections); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	monitoring.DaySubmissions.Inc()
	s.notifyBoard(date)
	c.JSON(http.StatusOK, gin.H{"message": "selection saved"})
}

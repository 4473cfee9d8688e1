package api

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"refectory/internal/eligibility"
	"refectory/internal/models"
	"refectory/internal/store"
)

// parseDateParam reads ?date= as an ISO date, defaulting to today.
func parseDateParam(c *gin.Context) time.Time {
	if raw := c.Query("date"); raw != "" {
		if d, err := models.ParseDate(raw); err == nil {
			return d
		}
	}
	return models.DateOf(time.Now())
}

// ListGuests returns guests active on the date, with their seats, optionally
// filtered by diet and a name substring.
func (s *Server) ListGuests(c *gin.Context) {
	if _, err := s.store.CleanupDepartedGuests(time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	date := parseDateParam(c)
	diet := models.DietKind(c.Query("diet"))
	if diet != "" && !models.ValidDietKind(diet) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown diet kind"})
		return
	}
	guests, err := s.store.ActiveGuests(date, diet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type guestRow struct {
		models.Guest
		Table int `json:"table,omitempty"`
		Place int `json:"place,omitempty"`
	}
	rows := make([]guestRow, 0, len(guests))
	for _, g := range guests {
		row := guestRow{Guest: g}
		if seat, err := s.store.SeatFor(g.ID, date); err == nil {
			row.Table = seat.Table.Number
			row.Place = seat.PlaceNumber
		}
		rows = append(rows, row)
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "guests": rows})
}

// CreateGuest registers an arriving guest and seats them. The generated
// access code is returned once, for handing to the guest.
func (s *Server) CreateGuest(c *gin.Context) {
	var req struct {
		FullName        string `json:"full_name" binding:"required"`
		StartDate       string `json:"start_date"`
		EndDate         string `json:"end_date" binding:"required"`
		DietKind        string `json:"diet_kind" binding:"required"`
		TableNumber     int    `json:"table_number" binding:"required"`
		PlaceNumber     int    `json:"place_number" binding:"required"`
		DepartureLunch  bool   `json:"departure_lunch"`
		DepartureDinner bool   `json:"departure_dinner"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidDietKind(models.DietKind(req.DietKind)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown diet kind"})
		return
	}
	end, err := models.ParseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	start := models.DateOf(time.Now())
	if req.StartDate != "" {
		if start, err = models.ParseDate(req.StartDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
	}

	if _, err := s.store.CleanupDepartedGuests(time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	guest := models.Guest{
		FullName:         req.FullName,
		StartDate:        start,
		EndDate:          end,
		DietKind:         models.DietKind(req.DietKind),
		BreakfastAllowed: true,
		LunchAllowed:     true,
		DinnerAllowed:    true,
		DepartureLunch:   req.DepartureLunch,
		DepartureDinner:  req.DepartureDinner,
	}
	created, err := s.store.CreateGuestWithSeat(guest, req.TableNumber, req.PlaceNumber)
	if err == store.ErrSeatTaken {
		c.JSON(http.StatusConflict, gin.H{"error": "seat already taken for the period"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// MoveGuest reseats a guest from the given date onward.
func (s *Server) MoveGuest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
		return
	}
	var req struct {
		Date        string `json:"date"`
		TableNumber int    `json:"table_number" binding:"required"`
		PlaceNumber int    `json:"place_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	moveDate := models.DateOf(time.Now())
	if req.Date != "" {
		if moveDate, err = models.ParseDate(req.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
	}

	err = s.store.MoveGuest(uint(id), moveDate, req.TableNumber, req.PlaceNumber)
	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "guest moved"})
	case store.ErrSeatTaken:
		c.JSON(http.StatusConflict, gin.H{"error": "seat already taken for the period"})
	case store.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// SeatingOverview returns the hall occupancy for ?date=: every occupied
// place with the guest sitting there, grouped by table.
func (s *Server) SeatingOverview(c *gin.Context) {
	date := parseDateParam(c)

	seats, err := s.store.SeatsOn(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	guests, err := s.store.ActiveGuests(date, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	byID := make(map[uint]models.Guest, len(guests))
	for _, g := range guests {
		byID[g.ID] = g
	}

	type placeView struct {
		Place    int             `json:"place"`
		GuestID  uint            `json:"guest_id"`
		FullName string          `json:"full_name"`
		DietKind models.DietKind `json:"diet_kind"`
	}
	type tableView struct {
		Table  int         `json:"table"`
		Places []placeView `json:"places"`
	}

	var tables []tableView
	index := map[int]int{}
	for _, seat := range seats {
		g, ok := byID[seat.GuestID]
		if !ok {
			continue
		}
		n := seat.Table.Number
		i, seen := index[n]
		if !seen {
			i = len(tables)
			index[n] = i
			tables = append(tables, tableView{Table: n})
		}
		tables[i].Places = append(tables[i].Places, placeView{
			Place:    seat.PlaceNumber,
			GuestID:  g.ID,
			FullName: g.FullName,
			DietKind: g.DietKind,
		})
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Table < tables[j].Table })
	for i := range tables {
		p := tables[i].Places
		sort.Slice(p, func(a, b int) bool { return p[a].Place < p[b].Place })
	}

	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "tables": tables})
}

// AllowedMeals returns the eligibility answer for one guest and date. The
// guest order screen uses it to decide which meal sections to show.
func (s *Server) AllowedMeals(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
		return
	}
	guest, err := s.store.Guest(uint(id))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	date := parseDateParam(c)
	meals := eligibility.AllowedMeals(guest, date)
	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"meals": meals,
	})
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"refectory/internal/models"
	"refectory/internal/reports"
)

// WaiterReport renders the compact per-waiter sheet for ?date= restricted to
// ?table_from=..&table_to= (the waiter's section).
func (s *Server) WaiterReport(c *gin.Context) {
	date := parseDateParam(c)
	tableFrom := intQuery(c, "table_from", 1)
	tableTo := intQuery(c, "table_to", models.MaxTableNumber)
	if tableFrom > tableTo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "table_from is greater than table_to"})
		return
	}

	orders, err := s.store.OrdersOn(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	seatRows, err := s.store.SeatsOn(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	blocks := reports.WaiterCompact(orders, reports.SeatsByGuest(seatRows), tableFrom, tableTo)
	c.JSON(http.StatusOK, gin.H{
		"date":       date.Format("2006-01-02"),
		"table_from": tableFrom,
		"table_to":   tableTo,
		"meals":      blocks,
	})
}

// KitchenReport renders the per-dish portion totals for ?date=.
func (s *Server) KitchenReport(c *gin.Context) {
	date := parseDateParam(c)

	orders, err := s.store.OrdersOn(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	seatRows, err := s.store.SeatsOn(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dishes := reports.KitchenSummary(orders, reports.SeatsByGuest(seatRows))
	c.JSON(http.StatusOK, gin.H{
		"date":   date.Format("2006-01-02"),
		"dishes": dishes,
	})
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"refectory/internal/models"
	"refectory/internal/store"
)

// ResolveRotation maps ?date= to the active cycle and day-of-cycle index.
func (s *Server) ResolveRotation(c *gin.Context) {
	date := parseDateParam(c)
	cycle, day, err := s.store.ResolveDate(date)
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
	c.JSON(http.StatusOK, gin.H{
		"date":       date.Format("2006-01-02"),
		"cycle_id":   cycle.ID,
		"cycle_name": cycle.Name,
		"day_index":  day,
	})
}

// GetRotationSettings returns the settings row and the cycle list.
func (s *Server) GetRotationSettings(c *gin.Context) {
	cfg, err := s.store.RotationSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cycles, err := s.store.Cycles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"base_date":       cfg.BaseDate.Format("2006-01-02"),
		"forced_cycle_id": cfg.ForcedCycleID,
		"cycles":          cycles,
	})
}

// UpdateRotationSettings is the administrative mutator of the rotation.
func (s *Server) UpdateRotationSettings(c *gin.Context) {
	var req struct {
		BaseDate      string `json:"base_date" binding:"required"`
		ForcedCycleID uint   `json:"forced_cycle_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	base, err := models.ParseDate(req.BaseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid base_date"})
		return
	}
	cfg, err := s.store.UpdateRotationSettings(base, req.ForcedCycleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"base_date":       cfg.BaseDate.Format("2006-01-02"),
		"forced_cycle_id": cfg.ForcedCycleID,
	})
}

// GetDailyMenu returns the resolved menu for ?date= and ?diet=, grouped by
// meal and category the way the order screen renders it.
func (s *Server) GetDailyMenu(c *gin.Context) {
	date := parseDateParam(c)
	diet := models.DietKind(c.Query("diet"))
	if !models.ValidDietKind(diet) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown diet kind"})
		return
	}

	menu, err := s.store.DailyMenuFor(date, diet)
	if err == store.ErrNoCycles || err == store.ErrNoDailyMenu {
		c.JSON(http.StatusOK, gin.H{
			"date":    date.Format("2006-01-02"),
			"diet":    diet,
			"message": "no menu configured for this date",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type itemView struct {
		ID       uint   `json:"id"`
		Dish     string `json:"dish"`
		IsCommon bool   `json:"is_common"`
	}
	type categoryView struct {
		Category string     `json:"category"`
		Items    []itemView `json:"items"`
	}
	type mealView struct {
		Meal       models.MealTime `json:"meal"`
		ServedAt   string          `json:"served_at,omitempty"`
		Categories []categoryView  `json:"categories"`
	}

	var meals []mealView
	for _, slot := range models.MealTimes {
		var categories []categoryView
		seen := map[string]int{}
		for _, it := range menu.Items {
			if it.MealTime != slot {
				continue
			}
			idx, ok := seen[it.Category]
			if !ok {
				idx = len(categories)
				seen[it.Category] = idx
				categories = append(categories, categoryView{Category: it.Category})
			}
			categories[idx].Items = append(categories[idx].Items, itemView{
				ID:       it.ID,
				Dish:     it.Dish.Name,
				IsCommon: it.IsCommon,
			})
		}
		if len(categories) == 0 {
			continue
		}
		meals = append(meals, mealView{
			Meal:       slot,
			ServedAt:   models.MealServedAt[slot],
			Categories: categories,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     date.Format("2006-01-02"),
		"diet":     diet,
		"cycle_id": menu.CycleID,
		"day":      menu.DayIndex,
		"meals":    meals,
	})
}

// AddMenuItem appends a dish line to a day's menu template, creating the
// template on first use.
func (s *Server) AddMenuItem(c *gin.Context) {
	var req struct {
		Date     string `json:"date" binding:"required"`
		DietKind string `json:"diet_kind" binding:"required"`
		MealTime string `json:"meal_time" binding:"required"`
		Category string `json:"category"`
		DishID   uint   `json:"dish_id" binding:"required"`
		IsCommon bool   `json:"is_common"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	diet := models.DietKind(req.DietKind)
	meal := models.MealTime(req.MealTime)
	if !models.ValidDietKind(diet) || !models.ValidMealTime(meal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown diet kind or meal time"})
		return
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	cycle, day, err := s.store.ResolveDate(date)
	if err == store.ErrNoCycles {
		c.JSON(http.StatusConflict, gin.H{"error": "no menu cycles configured"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	menu, err := s.store.GetOrCreateDailyMenu(cycle.ID, day, diet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	item, err := s.store.AddMenuItem(menu.ID, meal, req.Category, req.DishID, req.IsCommon)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Package api is the HTTP surface of the dining-hall service: staff
// operations, the guest order screen backend, and the live hall board.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"refectory/internal/assignment"
	"refectory/internal/store"
)

// Server wires the router to the store and the assignment engine.
type Server struct {
	Router *gin.Engine

	store  *store.Store
	assign *assignment.Service
	board  *Board
	secret []byte
}

// NewServer creates the API server. secret signs guest session tokens.
func NewServer(st *store.Store, secret []byte) *Server {
	s := &Server{
		Router: gin.Default(),
		store:  st,
		assign: assignment.NewService(st),
		board:  NewBoard(),
		secret: secret,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints.
func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "dining-hall API is running"})
	})

	s.Router.GET("/ws/board", s.handleBoard)

	v1 := s.Router.Group("/api/v1")
	{
		// Rotation
		v1.GET("/rotation/resolve", s.ResolveRotation)
		v1.GET("/rotation/settings", s.GetRotationSettings)
		v1.PUT("/rotation/settings", s.UpdateRotationSettings)

		// Guests and seating
		v1.GET("/guests", s.ListGuests)
		v1.POST("/guests", s.CreateGuest)
		v1.POST("/guests/:id/move", s.MoveGuest)
		v1.GET("/guests/:id/meals", s.AllowedMeals)
		v1.GET("/seating", s.SeatingOverview)

		// Guest session
		v1.POST("/login", s.GuestLogin)

		// Menus
		v1.GET("/menus", s.GetDailyMenu)
		v1.POST("/menus/items", s.AddMenuItem)

		// Orders
		v1.GET("/orders/missing", s.ListMissing)
		v1.POST("/orders/assign", s.BulkAssign)
		v1.GET("/orders/day", s.guestAuth(), s.GetDay)
		v1.POST("/orders/day", s.guestAuth(), s.SubmitDay)

		// Reports
		v1.GET("/reports/waiter", s.WaiterReport)
		v1.GET("/reports/kitchen", s.KitchenReport)
	}
}

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"refectory/internal/models"
	"refectory/internal/store"
)

const guestIDKey = "guest_id"

// GuestLogin exchanges an access code for a session token. The token expires
// the day after the guest's departure; there is nothing left to order then.
func (s *Server) GuestLogin(c *gin.Context) {
	var req struct {
		AccessCode string `json:"access_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guest, err := s.store.GuestByAccessCode(req.AccessCode, time.Now())
	if err == store.ErrNotFound {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid code or the stay has already ended"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	claims := jwt.MapClaims{
		"guest_id": guest.ID,
		"exp":      models.DateOf(guest.EndDate).AddDate(0, 0, 1).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     signed,
		"guest_id":  guest.ID,
		"full_name": guest.FullName,
		"diet_kind": guest.DietKind,
	})
}

// guestAuth validates the bearer token and stores the guest id on the
// context.
func (s *Server) guestAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		id, ok := claims["guest_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(guestIDKey, uint(id))
		c.Next()
	}
}

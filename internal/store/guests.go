package store

import (
	"fmt"
	"math/rand"
	"time"

	"refectory/internal/models"
)

const accessCodeLength = 4

// CleanupDepartedGuests purges guests whose end date has passed, cascading
// their seat assignments and orders. Run as housekeeping at the top of
// mutating operations; the engine assumes it already ran.
func (s *Store) CleanupDepartedGuests(today time.Time) (int, error) {
	var departed []models.Guest
	if err := s.db.Where("end_date < ?", models.DateOf(today)).Find(&departed).Error; err != nil {
		return 0, err
	}
	if len(departed) == 0 {
		return 0, nil
	}
	ids := make([]uint, 0, len(departed))
	for _, g := range departed {
		ids = append(ids, g.ID)
	}

	err := s.Transaction(func(tx *Store) error {
		var orderIDs []uint
		rows, err := tx.db.Table("orders").Select("id").Where("guest_id IN (?)", ids).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var id uint
			if err := rows.Scan(&id); err != nil {
				return err
			}
			orderIDs = append(orderIDs, id)
		}
		if len(orderIDs) > 0 {
			if err := tx.db.Unscoped().Where("order_id IN (?)", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.db.Unscoped().Where("id IN (?)", orderIDs).Delete(&models.Order{}).Error; err != nil {
				return err
			}
		}
		if err := tx.db.Unscoped().Where("guest_id IN (?)", ids).Delete(&models.SeatAssignment{}).Error; err != nil {
			return err
		}
		return tx.db.Unscoped().Where("id IN (?)", ids).Delete(&models.Guest{}).Error
	})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// ActiveGuests returns guests whose stay covers date, for one diet or for
// all when diet is empty, ordered by name.
func (s *Store) ActiveGuests(date time.Time, diet models.DietKind) ([]models.Guest, error) {
	d := models.DateOf(date)
	q := s.db.Where("start_date <= ? AND end_date >= ?", d, d)
	if diet != "" {
		q = q.Where("diet_kind = ?", diet)
	}
	var guests []models.Guest
	if err := q.Order("full_name").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

// Guest loads one guest by id.
func (s *Store) Guest(id uint) (models.Guest, error) {
	var g models.Guest
	q := s.db.First(&g, id)
	if q.RecordNotFound() {
		return g, ErrNotFound
	}
	return g, q.Error
}

// GuestByAccessCode finds a guest by login code whose stay has not ended.
func (s *Store) GuestByAccessCode(code string, today time.Time) (models.Guest, error) {
	var g models.Guest
	q := s.db.Where("access_code = ? AND end_date >= ?", code, models.DateOf(today)).First(&g)
	if q.RecordNotFound() {
		return g, ErrNotFound
	}
	return g, q.Error
}

// UniqueAccessCode draws numeric codes until one is free among current
// guests.
func (s *Store) UniqueAccessCode() (string, error) {
	for {
		code := randomDigits(accessCodeLength)
		var count int
		if err := s.db.Model(&models.Guest{}).Where("access_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
}

func randomDigits(n int) string {
	code := ""
	for i := 0; i < n; i++ {
		code += fmt.Sprintf("%d", rand.Intn(10))
	}
	return code
}

// CreateGuestWithSeat registers an arriving guest: generates an access code,
// creates the guest row and seats them, checking the place is free for the
// whole stay. The table row is created on first use.
func (s *Store) CreateGuestWithSeat(g models.Guest, tableNumber, placeNumber int) (models.Guest, error) {
	g.StartDate = models.DateOf(g.StartDate)
	g.EndDate = models.DateOf(g.EndDate)

	err := s.Transaction(func(tx *Store) error {
		table, err := tx.getOrCreateTable(tableNumber)
		if err != nil {
			return err
		}
		taken, err := tx.seatTaken(table.ID, placeNumber, g.StartDate, g.EndDate, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrSeatTaken
		}
		code, err := tx.UniqueAccessCode()
		if err != nil {
			return err
		}
		g.AccessCode = code
		if err := tx.db.Create(&g).Error; err != nil {
			return err
		}
		seat := models.SeatAssignment{
			GuestID:     g.ID,
			TableID:     table.ID,
			PlaceNumber: placeNumber,
			StartDate:   g.StartDate,
			EndDate:     g.EndDate,
		}
		return tx.db.Create(&seat).Error
	})
	return g, err
}

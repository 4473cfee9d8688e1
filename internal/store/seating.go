package store

import (
	"fmt"
	"time"

	"refectory/internal/models"
)

func (s *Store) getOrCreateTable(number int) (models.DiningTable, error) {
	if number < 1 || number > models.MaxTableNumber {
		return models.DiningTable{}, fmt.Errorf("table number %d out of range", number)
	}
	var table models.DiningTable
	err := s.db.FirstOrCreate(&table, models.DiningTable{Number: number}).Error
	if err == nil && table.PlacesCount == 0 {
		table.PlacesCount = models.PlacesPerTable
		err = s.db.Save(&table).Error
	}
	return table, err
}

// seatTaken reports whether (table, place) overlaps an existing assignment
// in [from, to], ignoring excludeGuest's own assignments.
func (s *Store) seatTaken(tableID uint, place int, from, to time.Time, excludeGuest uint) (bool, error) {
	q := s.db.Model(&models.SeatAssignment{}).
		Where("table_id = ? AND place_number = ?", tableID, place).
		Where("start_date <= ? AND end_date >= ?", models.DateOf(to), models.DateOf(from))
	if excludeGuest != 0 {
		q = q.Where("guest_id <> ?", excludeGuest)
	}
	var count int
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SeatFor returns the guest's assignment in effect on date, or ErrNotFound.
func (s *Store) SeatFor(guestID uint, date time.Time) (models.SeatAssignment, error) {
	d := models.DateOf(date)
	var seat models.SeatAssignment
	q := s.db.Preload("Table").
		Where("guest_id = ? AND start_date <= ? AND end_date >= ?", guestID, d, d).
		Order("start_date desc").
		First(&seat)
	if q.RecordNotFound() {
		return seat, ErrNotFound
	}
	return seat, q.Error
}

// SeatsOn returns every assignment in effect on date with tables preloaded.
func (s *Store) SeatsOn(date time.Time) ([]models.SeatAssignment, error) {
	d := models.DateOf(date)
	var seats []models.SeatAssignment
	err := s.db.Preload("Table").
		Where("start_date <= ? AND end_date >= ?", d, d).
		Find(&seats).Error
	return seats, err
}

// MoveGuest reseats a guest from moveDate to the end of their stay. When the
// move date coincides with the start of the current assignment the row is
// retargeted in place; otherwise the old assignment is closed the day before
// and a new one opened.
func (s *Store) MoveGuest(guestID uint, moveDate time.Time, tableNumber, placeNumber int) error {
	if placeNumber < 1 || placeNumber > models.PlacesPerTable {
		return fmt.Errorf("place number %d out of range", placeNumber)
	}
	guest, err := s.Guest(guestID)
	if err != nil {
		return err
	}
	move := models.DateOf(moveDate)
	if move.After(models.DateOf(guest.EndDate)) {
		return fmt.Errorf("cannot move a guest past the end of their stay")
	}

	return s.Transaction(func(tx *Store) error {
		table, err := tx.getOrCreateTable(tableNumber)
		if err != nil {
			return err
		}
		taken, err := tx.seatTaken(table.ID, placeNumber, move, guest.EndDate, guestID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSeatTaken
		}

		current, err := tx.SeatFor(guestID, move)
		if err == ErrNotFound {
			seat := models.SeatAssignment{
				GuestID:     guestID,
				TableID:     table.ID,
				PlaceNumber: placeNumber,
				StartDate:   move,
				EndDate:     models.DateOf(guest.EndDate),
			}
			return tx.db.Create(&seat).Error
		}
		if err != nil {
			return err
		}

		if !models.DateOf(current.StartDate).Before(move) {
			current.TableID = table.ID
			current.Table = table
			current.PlaceNumber = placeNumber
			return tx.db.Save(&current).Error
		}

		current.EndDate = move.AddDate(0, 0, -1)
		if err := tx.db.Save(&current).Error; err != nil {
			return err
		}
		seat := models.SeatAssignment{
			GuestID:     guestID,
			TableID:     table.ID,
			PlaceNumber: placeNumber,
			StartDate:   move,
			EndDate:     models.DateOf(guest.EndDate),
		}
		return tx.db.Create(&seat).Error
	})
}

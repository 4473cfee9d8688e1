// Package store is the persistence layer for guests, menus, seating and
// orders. The engine packages reach the database only through it.
package store

import (
	"errors"

	"github.com/jinzhu/gorm"
)

// Engine-level conditions callers are expected to recover from. Handlers
// translate them into "nothing to do" responses for staff, never faults.
var (
	ErrNoCycles    = errors.New("no menu cycles configured")
	ErrNoDailyMenu = errors.New("no daily menu configured for date and diet")
	ErrSeatTaken   = errors.New("seat already taken for the period")
	ErrNotFound    = errors.New("record not found")
)

// Store wraps a gorm connection. A Store made by Transaction shares the
// transaction handle, so every method can run inside or outside one.
type Store struct {
	db *gorm.DB
}

// New returns a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a transactional Store, committing on nil and
// rolling back on error or panic.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	if err := fn(&Store{db: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// DB exposes the underlying handle for migrations and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Package database owns the gorm connection and schema for the dining hall.
package database

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"refectory/internal/models"
)

var db *gorm.DB

// Init opens the database connection. dialect is "sqlite3" or "postgres".
func Init(dialect, dsn string) error {
	var err error
	db, err = gorm.Open(dialect, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	return nil
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return db
}

// CloseDB closes the database connection.
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Migrate creates or updates the schema for all dining-hall tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.DiningTable{},
		&models.Guest{},
		&models.SeatAssignment{},
		&models.Dish{},
		&models.MenuCycle{},
		&models.DailyMenu{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.RotationConfig{},
	).Error
}

// Seed ensures the baseline rows exist: the two default 7-day cycles and the
// rotation settings row. Explicit setup run at startup, not a per-request
// check.
func Seed(db *gorm.DB) error {
	var cycleCount int
	if err := db.Model(&models.MenuCycle{}).Count(&cycleCount).Error; err != nil {
		return err
	}
	if cycleCount == 0 {
		defaults := []models.MenuCycle{
			{Name: "Menu No. 1", DaysCount: 7},
			{Name: "Menu No. 2", DaysCount: 7},
		}
		for _, c := range defaults {
			if err := db.Create(&c).Error; err != nil {
				return err
			}
		}
	}

	var cfgCount int
	if err := db.Model(&models.RotationConfig{}).Count(&cfgCount).Error; err != nil {
		return err
	}
	if cfgCount == 0 {
		cfg := models.RotationConfig{BaseDate: models.DefaultBaseDate}
		if err := db.Create(&cfg).Error; err != nil {
			return err
		}
	}
	return nil
}

package store

import (
	"time"

	"refectory/internal/models"
	"refectory/internal/monitoring"
	"refectory/internal/rotation"
)

// Cycles returns all menu cycles in creation order, the order the rotation
// alternates over.
func (s *Store) Cycles() ([]models.MenuCycle, error) {
	var cycles []models.MenuCycle
	if err := s.db.Order("id").Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

// RotationSettings returns the singleton settings row, creating it with the
// default base date on first access.
func (s *Store) RotationSettings() (models.RotationConfig, error) {
	var cfg models.RotationConfig
	q := s.db.Order("id").First(&cfg)
	if q.RecordNotFound() {
		cfg = models.RotationConfig{BaseDate: models.DefaultBaseDate}
		return cfg, s.db.Create(&cfg).Error
	}
	return cfg, q.Error
}

// UpdateRotationSettings is the sole mutator of the settings row. A zero
// forcedCycleID clears the override and restores automatic alternation.
func (s *Store) UpdateRotationSettings(baseDate time.Time, forcedCycleID uint) (models.RotationConfig, error) {
	cfg, err := s.RotationSettings()
	if err != nil {
		return cfg, err
	}
	cfg.BaseDate = models.DateOf(baseDate)
	cfg.ForcedCycleID = forcedCycleID
	if forcedCycleID != 0 {
		var cycle models.MenuCycle
		if s.db.First(&cycle, forcedCycleID).RecordNotFound() {
			cfg.ForcedCycleID = 0
		}
	}
	err = s.db.Save(&cfg).Error
	return cfg, err
}

// ResolveDate maps a calendar date to the active cycle and day index using
// the stored cycles and settings. Returns ErrNoCycles when none exist.
func (s *Store) ResolveDate(target time.Time) (*models.MenuCycle, int, error) {
	cycles, err := s.Cycles()
	if err != nil {
		return nil, 0, err
	}
	cfg, err := s.RotationSettings()
	if err != nil {
		return nil, 0, err
	}
	cycle, day := rotation.Resolve(cycles, rotation.Config{
		BaseDate:      cfg.BaseDate,
		ForcedCycleID: cfg.ForcedCycleID,
	}, target)
	if cycle == nil {
		monitoring.Resolutions.WithLabelValues("unconfigured").Inc()
		return nil, 0, ErrNoCycles
	}
	if cfg.ForcedCycleID != 0 && cfg.ForcedCycleID == cycle.ID {
		monitoring.Resolutions.WithLabelValues("forced").Inc()
	} else {
		monitoring.Resolutions.WithLabelValues("resolved").Inc()
	}
	return cycle, day, nil
}

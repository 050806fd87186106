package services

import (
	"time"

	"gorm.io/gorm"

	"gagyebu/internal/cycle"
	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/models"
)

// settingsService manages the singleton settings row.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// GetSettings returns the settings row, creating it with defaults on first
// access.
func (s *settingsService) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.Where("1 = 1").Attrs(models.Settings{CycleStartDay: 1}).FirstOrCreate(&settings).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// UpdateCycleStartDay changes the pay-cycle anchor day.
func (s *settingsService) UpdateCycleStartDay(day int) (*models.Settings, error) {
	if day < 1 || day > 31 {
		return nil, apperrors.ErrInvalidCycleDay
	}

	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	settings.CycleStartDay = day
	if err := s.db.Save(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

// CurrentCycle returns the pay cycle containing now under the stored anchor.
func (s *settingsService) CurrentCycle(now time.Time) (cycle.Range, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return cycle.Range{}, err
	}
	return cycle.ComputeRange(now, settings.CycleStartDay), nil
}

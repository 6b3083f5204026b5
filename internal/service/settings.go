package service

import (
	"time"

	"restaurant-pos/internal/config"
)

// Settings holds the values shared by the snapshot and indicator services.
type Settings struct {
	// Location is the zone used for revenue buckets and order timestamps.
	Location *time.Location
	// Currency is reported alongside the dashboard revenue.
	Currency string
	// PriceScale is the number of decimal places snapshot prices keep.
	PriceScale int32
	// MaxDashboardDays caps the calendar days a dashboard may span.
	MaxDashboardDays int
	// Now returns the current time.
	Now func() time.Time
}

const defaultMaxDashboardDays = 366

// DefaultSettings returns UTC, USD, two decimal places, a one year dashboard
// window and the wall clock.
func DefaultSettings() Settings {
	return Settings{
		Location:         time.UTC,
		Currency:         "USD",
		PriceScale:       2,
		MaxDashboardDays: defaultMaxDashboardDays,
		Now:              time.Now,
	}
}

// SettingsFromConfig builds Settings from the application configuration.
func SettingsFromConfig(cfg config.AppConfig) Settings {
	return Settings{
		Location:         cfg.Location(),
		Currency:         cfg.Currency,
		PriceScale:       int32(cfg.PriceScale),
		MaxDashboardDays: cfg.MaxDashboardDays,
		Now:              time.Now,
	}
}

func (s Settings) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s Settings) maxDashboardDays() int {
	if s.MaxDashboardDays <= 0 {
		return defaultMaxDashboardDays
	}
	return s.MaxDashboardDays
}

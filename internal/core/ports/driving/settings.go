package driving

import "github.com/custodia-labs/nlquery/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults applied.
	Get() (*domain.AppSettings, error)

	// Set stores a single setting by its dot-notation key.
	Set(key, value string) error

	// Keys lists the recognised setting keys.
	Keys() []string

	// Validate checks that every required setting is present.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}

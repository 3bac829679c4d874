package driving

import "github.com/custodia-labs/pagesplit/internal/core/domain"

// SettingsService manages user defaults.
type SettingsService interface {
	// Get retrieves current settings merged over defaults.
	Get() (*domain.Settings, error)

	// Save persists all settings.
	Save(settings *domain.Settings) error

	// Set updates a single setting by its config key.
	Set(key, value string) error

	// Keys lists the config keys Set accepts.
	Keys() []string

	// Validate checks that the stored settings are usable.
	Validate() error
}

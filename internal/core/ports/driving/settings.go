package driving

import "github.com/custodia-labs/orderpack/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings after normalising them.
	Save(settings *domain.AppSettings) error

	// SetBatchPolicy updates the fetch scheduling settings.
	SetBatchPolicy(policy domain.BatchPolicy) error

	// SetCollisionPolicy updates how duplicate entry names are handled.
	SetCollisionPolicy(policy domain.CollisionPolicy) error

	// SetValue updates a single setting by its CLI name.
	SetValue(name, value string) error

	// Reset restores every setting to its default.
	Reset() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}

package driving

import "github.com/custodia-labs/tssearch/internal/core/domain"

// SettingsService reads and updates the persisted configuration.
type SettingsService interface {
	// Get returns the effective settings, defaults filled in.
	Get() (*domain.Settings, error)

	// Set parses value for a known key and persists it.
	Set(key, value string) error

	// Keys lists the settable keys in display order.
	Keys() []string

	// Values returns every key with its effective value.
	Values() ([]SettingValue, error)

	// Path returns where settings are stored.
	Path() string
}

// SettingValue is one effective setting.
type SettingValue struct {
	Key   string
	Value string

	// Secret marks credentials that UIs should mask.
	Secret bool
}

// Masked returns Value, or a fixed mask for non-empty secrets.
func (v SettingValue) Masked() string {
	if v.Secret && v.Value != "" {
		return "********"
	}
	return v.Value
}

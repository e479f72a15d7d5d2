package driving

import "github.com/custodia-labs/roster/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, including environment overrides.
	Get() (*domain.AppSettings, error)

	// Set stores a single setting by its dotted key.
	Set(key, value string) error

	// Permission returns the persisted decision for a permission kind.
	Permission(kind domain.PermissionKind) domain.PermissionState

	// SetPermission persists a decision. PermissionUnknown clears it.
	SetPermission(kind domain.PermissionKind, state domain.PermissionState) error

	// Keys lists the settable keys.
	Keys() []string
}

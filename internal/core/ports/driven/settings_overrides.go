package driven

import "github.com/custodia-labs/roster/internal/core/domain"

// SettingsOverrides layers values from outside the config file
// (typically environment variables) on top of stored settings.
type SettingsOverrides interface {
	Apply(settings *domain.AppSettings) error
}

package env

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
)

// Ensure Overrides implements the interface.
var _ driven.SettingsOverrides = (*Overrides)(nil)

// Vars holds the raw environment values.
type Vars struct {
	Home           string   `env:"ROSTER_HOME"`
	Verbose        bool     `env:"ROSTER_VERBOSE"`
	Storage        string   `env:"ROSTER_STORAGE"`
	ContactsSource string   `env:"ROSTER_CONTACTS_SOURCE"`
	AddressBook    string   `env:"ROSTER_ADDRESSBOOK"`
	LibraryDir     string   `env:"ROSTER_LIBRARY_DIR"`
	CameraInbox    string   `env:"ROSTER_CAMERA_INBOX"`
	CameraCommand  []string `env:"ROSTER_CAMERA_COMMAND" envSeparator:" "`
}

// Load parses Vars from the process environment.
func Load() (Vars, error) {
	return parse(env.Options{})
}

// LoadFrom parses Vars from the given map instead of the process environment.
func LoadFrom(environ map[string]string) (Vars, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Vars, error) {
	var vars Vars
	if err := env.ParseWithOptions(&vars, opts); err != nil {
		return Vars{}, fmt.Errorf("parse env: %w", err)
	}
	return vars, nil
}

// Overrides applies non-empty environment values to settings.
type Overrides struct {
	vars Vars
}

// NewOverrides creates overrides from already parsed variables.
func NewOverrides(vars Vars) *Overrides {
	return &Overrides{vars: vars}
}

// Apply overwrites every setting that has a matching variable set.
func (o *Overrides) Apply(settings *domain.AppSettings) error {
	v := o.vars

	if v.Storage != "" {
		backend := domain.StorageBackend(v.Storage)
		if !backend.IsValid() {
			return fmt.Errorf("%w: ROSTER_STORAGE=%q", domain.ErrInvalidInput, v.Storage)
		}
		settings.Storage = backend
	}
	if v.ContactsSource != "" {
		source := domain.ContactsSource(v.ContactsSource)
		if !source.IsValid() {
			return fmt.Errorf("%w: ROSTER_CONTACTS_SOURCE=%q", domain.ErrInvalidInput, v.ContactsSource)
		}
		settings.Contacts.Source = source
	}
	if v.AddressBook != "" {
		settings.Contacts.AddressBookPath = v.AddressBook
	}
	if v.LibraryDir != "" {
		settings.Library.Dir = v.LibraryDir
	}
	if v.CameraInbox != "" {
		settings.Camera.InboxDir = v.CameraInbox
	}
	if len(v.CameraCommand) > 0 {
		settings.Camera.Command = v.CameraCommand
	}
	return nil
}

package services

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyStorageBackend  = "storage.backend"
	keyDataDir         = "storage.data_dir"
	keyContactsSource  = "contacts.source"
	keyAddressBookPath = "contacts.addressbook_path"
	keyGoogleClientID  = "contacts.google.client_id"
	keyGoogleSecret    = "contacts.google.client_secret"
	keyGoogleRefresh   = "contacts.google.refresh_token"
	keyLibraryDir      = "library.dir"
	keyCameraInbox     = "camera.inbox_dir"
	keyCameraCommand   = "camera.command"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	overrides   driven.SettingsOverrides
	homeDir     string
}

// NewSettingsService creates a new settings service. If homeDir is empty
// the user's home directory is used for defaults.
func NewSettingsService(
	configStore driven.ConfigStore,
	overrides driven.SettingsOverrides,
	homeDir string,
) *SettingsService {
	if homeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			homeDir = home
		}
	}
	return &SettingsService{
		configStore: configStore,
		overrides:   overrides,
		homeDir:     homeDir,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings(s.homeDir)
	settings := defaults

	if s.configStore != nil {
		settings = domain.AppSettings{
			DataDir: s.getString(keyDataDir, defaults.DataDir),
			Storage: domain.StorageBackend(s.getString(keyStorageBackend, defaults.Storage.String())),
			Contacts: domain.ContactsSettings{
				Source:          domain.ContactsSource(s.getString(keyContactsSource, defaults.Contacts.Source.String())),
				AddressBookPath: s.getString(keyAddressBookPath, defaults.Contacts.AddressBookPath),
				Google: domain.GoogleContactsSettings{
					ClientID:     s.configStore.GetString(keyGoogleClientID),
					ClientSecret: s.configStore.GetString(keyGoogleSecret),
					RefreshToken: s.configStore.GetString(keyGoogleRefresh),
				},
			},
			Library: domain.LibrarySettings{
				Dir: s.getString(keyLibraryDir, defaults.Library.Dir),
			},
			Camera: domain.CameraSettings{
				InboxDir: s.getString(keyCameraInbox, defaults.Camera.InboxDir),
				Command:  s.configStore.GetStrings(keyCameraCommand),
			},
		}
	}

	if s.overrides != nil {
		if err := s.overrides.Apply(&settings); err != nil {
			return nil, fmt.Errorf("apply overrides: %w", err)
		}
	}

	if !settings.Storage.IsValid() {
		return nil, fmt.Errorf("%w: storage backend %q", domain.ErrUnsupportedSource, settings.Storage)
	}
	if !settings.Contacts.Source.IsValid() {
		return nil, fmt.Errorf("%w: contacts source %q", domain.ErrUnsupportedSource, settings.Contacts.Source)
	}

	return &settings, nil
}

// Set stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	switch key {
	case keyStorageBackend:
		if !domain.StorageBackend(value).IsValid() {
			return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, value)
		}
	case keyContactsSource:
		if !domain.ContactsSource(value).IsValid() {
			return fmt.Errorf("%w: contacts source %q", domain.ErrInvalidInput, value)
		}
	case keyCameraCommand:
		if err := s.configStore.Set(key, strings.Fields(value)); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		return nil
	default:
		if !s.isKnownKey(key) {
			return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
		}
	}

	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Permission returns the persisted decision for kind.
func (s *SettingsService) Permission(kind domain.PermissionKind) domain.PermissionState {
	if s.configStore == nil {
		return domain.PermissionUnknown
	}
	return domain.ParsePermissionState(s.configStore.GetString(kind.ConfigKey()))
}

// SetPermission persists a decision. PermissionUnknown forgets it so the
// user is asked again next time.
func (s *SettingsService) SetPermission(kind domain.PermissionKind, state domain.PermissionState) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if !kind.IsValid() {
		return fmt.Errorf("%w: permission %q", domain.ErrInvalidInput, kind)
	}

	if state == domain.PermissionUnknown {
		return s.configStore.Unset(kind.ConfigKey())
	}
	return s.configStore.Set(kind.ConfigKey(), state.String())
}

// Keys lists the settable keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyStorageBackend, keyDataDir, keyContactsSource, keyAddressBookPath,
		keyGoogleClientID, keyGoogleSecret, keyGoogleRefresh,
		keyLibraryDir, keyCameraInbox, keyCameraCommand,
	}
	sort.Strings(keys)
	return keys
}

func (s *SettingsService) isKnownKey(key string) bool {
	for _, k := range s.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// getString returns the stored string or fallback when unset or empty.
func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

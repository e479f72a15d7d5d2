package domain

const unknownDescription = "Unknown"

// StorageBackend selects the key-value store implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists to ~/.roster/data/roster.db.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps values for the lifetime of the process only.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (persistent)"
	case StorageMemory:
		return "Memory (ephemeral)"
	default:
		return unknownDescription
	}
}

// ContactsSource selects where contacts are read from.
type ContactsSource string

// Available contact sources.
const (
	// ContactsAddressBook reads a local TOML address book.
	ContactsAddressBook ContactsSource = "addressbook"

	// ContactsGoogle reads connections from the Google People API.
	ContactsGoogle ContactsSource = "google"
)

// IsValid returns true if the contacts source is recognised.
func (s ContactsSource) IsValid() bool {
	switch s {
	case ContactsAddressBook, ContactsGoogle:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ContactsSource) String() string {
	return string(s)
}

// Description returns a human-readable description of the source.
func (s ContactsSource) Description() string {
	switch s {
	case ContactsAddressBook:
		return "Address book (local TOML file)"
	case ContactsGoogle:
		return "Google Contacts (People API)"
	default:
		return unknownDescription
	}
}

// GoogleContactsSettings holds OAuth client details for the People API.
type GoogleContactsSettings struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// IsConfigured returns true when a refresh can be attempted.
func (g GoogleContactsSettings) IsConfigured() bool {
	return g.ClientID != "" && g.RefreshToken != ""
}

// ContactsSettings configures the contact store.
type ContactsSettings struct {
	Source          ContactsSource
	AddressBookPath string
	Google          GoogleContactsSettings
}

// LibrarySettings configures the image library picker.
type LibrarySettings struct {
	// Dir is scanned for images.
	Dir string
}

// CameraSettings configures photo capture.
type CameraSettings struct {
	// InboxDir receives captured photos.
	InboxDir string

	// Command, when set, is run to take a photo. The token {output}
	// is replaced with the destination path.
	Command []string
}

// IsConfigured returns true if some capture mechanism is available.
func (c CameraSettings) IsConfigured() bool {
	return len(c.Command) > 0 || c.InboxDir != ""
}

// AppSettings aggregates all user configuration.
type AppSettings struct {
	DataDir  string
	Storage  StorageBackend
	Contacts ContactsSettings
	Library  LibrarySettings
	Camera   CameraSettings
}

// DefaultAppSettings returns settings rooted at homeDir/.roster.
func DefaultAppSettings(homeDir string) AppSettings {
	root := homeDir + "/.roster"
	return AppSettings{
		DataDir: root + "/data",
		Storage: StorageSQLite,
		Contacts: ContactsSettings{
			Source:          ContactsAddressBook,
			AddressBookPath: root + "/contacts.toml",
		},
		Library: LibrarySettings{
			Dir: homeDir + "/Pictures",
		},
		Camera: CameraSettings{
			InboxDir: root + "/camera",
		},
	}
}

package driven

// ConfigStore holds flat, dot-keyed configuration such as
// "contacts.google.client_id" or "permissions.camera".
type ConfigStore interface {
	// GetString returns the value, or "" when unset or not a string.
	GetString(key string) string

	// GetStrings returns a list value, or nil when unset or not a list.
	GetStrings(key string) []string

	// Set stores value and persists it before returning.
	Set(key string, value any) error

	// Unset removes key. Removing a missing key is not an error.
	Unset(key string) error
}

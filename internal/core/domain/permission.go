package domain

// PermissionKind identifies a protected resource.
type PermissionKind string

// Protected resources roster asks for.
const (
	// PermissionContacts guards reading the address book.
	PermissionContacts PermissionKind = "contacts"

	// PermissionCamera guards capturing a photo.
	PermissionCamera PermissionKind = "camera"
)

// IsValid returns true if the permission kind is recognised.
func (k PermissionKind) IsValid() bool {
	switch k {
	case PermissionContacts, PermissionCamera:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k PermissionKind) String() string {
	return string(k)
}

// ConfigKey returns the configuration key holding the persisted decision.
func (k PermissionKind) ConfigKey() string {
	return "permissions." + string(k)
}

// PermissionKinds returns every known permission kind.
func PermissionKinds() []PermissionKind {
	return []PermissionKind{PermissionContacts, PermissionCamera}
}

// PermissionState is the tri-state result of a permission request.
// The zero value is PermissionUnknown.
type PermissionState int

const (
	// PermissionUnknown means no answer has been established yet.
	PermissionUnknown PermissionState = iota
	// PermissionGranted means access is allowed.
	PermissionGranted
	// PermissionDenied means access is refused.
	PermissionDenied
)

// String returns the string representation.
func (s PermissionState) String() string {
	switch s {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// IsGranted returns true only for an explicit grant.
func (s PermissionState) IsGranted() bool {
	return s == PermissionGranted
}

// ParsePermissionState converts a stored string into a PermissionState.
// Anything unrecognised is PermissionUnknown.
func ParsePermissionState(s string) PermissionState {
	switch s {
	case "granted":
		return PermissionGranted
	case "denied":
		return PermissionDenied
	default:
		return PermissionUnknown
	}
}

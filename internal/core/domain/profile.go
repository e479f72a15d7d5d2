package domain

// ProfileImageKey is the key-value store key holding the profile image URI.
const ProfileImageKey = "profileImage"

// ProfileImageRef points at the currently selected profile photo.
type ProfileImageRef struct {
	URI string `json:"uri"`
}

// ProfileState is a point-in-time view of the profile screen.
type ProfileState struct {
	// Image is nil when no profile photo is set.
	Image *ProfileImageRef `json:"image,omitempty"`

	// CameraPermission is established during initialization.
	CameraPermission PermissionState `json:"-"`

	// Ready is true once both initialization steps have finished.
	Ready bool `json:"ready"`
}

// HasImage reports whether a profile photo is set.
func (s ProfileState) HasImage() bool {
	return s.Image != nil && s.Image.URI != ""
}

package domain

import "time"

// MediaType restricts what an acquisition may return.
type MediaType string

// Media types accepted by the image acquisition service.
const (
	MediaImages MediaType = "images"
	MediaVideos MediaType = "videos"
	MediaAll    MediaType = "all"
)

// IsValid returns true if the media type is recognised.
func (m MediaType) IsValid() bool {
	switch m {
	case MediaImages, MediaVideos, MediaAll:
		return true
	default:
		return false
	}
}

// AspectRatio is the crop ratio offered when editing is allowed.
type AspectRatio struct {
	Width  int
	Height int
}

// AcquisitionConfig is passed to both the library picker and the camera.
type AcquisitionConfig struct {
	// MediaType limits the selectable assets.
	MediaType MediaType

	// AllowsEditing lets the user crop before accepting.
	AllowsEditing bool

	// Aspect is the crop ratio used when editing.
	Aspect AspectRatio

	// Quality ranges from 0 to 1, where 1 is maximum.
	Quality float64
}

// DefaultAcquisitionConfig returns the profile photo configuration:
// editing allowed, 4:3 crop, maximum quality.
func DefaultAcquisitionConfig() AcquisitionConfig {
	return AcquisitionConfig{
		MediaType:     MediaAll,
		AllowsEditing: true,
		Aspect:        AspectRatio{Width: 4, Height: 3},
		Quality:       1,
	}
}

// Asset is one acquired image.
type Asset struct {
	// URI is a local resource locator, usually a file:// URL.
	URI string `json:"uri"`

	// MIMEType is best-effort and may be empty.
	MIMEType string `json:"mimeType,omitempty"`
}

// AcquisitionResult is what the picker or camera hands back.
// When Cancelled is false, Assets holds at least one entry.
type AcquisitionResult struct {
	Cancelled bool    `json:"cancelled"`
	Assets    []Asset `json:"assets,omitempty"`
}

// CancelledResult returns a result signalling the user backed out.
func CancelledResult() *AcquisitionResult {
	return &AcquisitionResult{Cancelled: true}
}

// AcquisitionOutcome is the controller's verdict on a pick or capture.
type AcquisitionOutcome int

const (
	// OutcomeUpdated means a new profile image was accepted.
	OutcomeUpdated AcquisitionOutcome = iota
	// OutcomeCancelled means the user backed out; nothing changed.
	OutcomeCancelled
	// OutcomePermissionRejected means capture was refused without trying.
	OutcomePermissionRejected
	// OutcomeFailed means the acquisition service returned an error.
	OutcomeFailed
)

// String returns the string representation.
func (o AcquisitionOutcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomePermissionRejected:
		return "permission_rejected"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LibraryItem is one file offered by the image library.
type LibraryItem struct {
	Path     string
	Name     string
	URI      string
	MIMEType string
	ModTime  time.Time
}

// Asset converts the item into an acquired asset.
func (i LibraryItem) Asset() Asset {
	return Asset{URI: i.URI, MIMEType: i.MIMEType}
}

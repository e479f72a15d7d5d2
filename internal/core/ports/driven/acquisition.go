package driven

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// ImageAcquirer obtains an image from the user.
// A user backing out is reported as a result with Cancelled set,
// not as an error.
type ImageAcquirer interface {
	// PickFromLibrary lets the user select an existing image.
	PickFromLibrary(ctx context.Context, cfg domain.AcquisitionConfig) (*domain.AcquisitionResult, error)

	// CaptureFromCamera takes a new photo.
	CaptureFromCamera(ctx context.Context, cfg domain.AcquisitionConfig) (*domain.AcquisitionResult, error)
}

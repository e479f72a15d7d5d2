package driving

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// ProfileImageController owns the single profile photo reference.
type ProfileImageController interface {
	// Initialize loads the stored image and establishes camera permission.
	// It runs once; later calls return immediately.
	Initialize(ctx context.Context) error

	// State returns a snapshot of the current image and permission state.
	State() domain.ProfileState

	// PickFromLibrary selects an existing image and makes it the profile photo.
	PickFromLibrary(ctx context.Context) (domain.AcquisitionOutcome, error)

	// CaptureFromCamera takes a new photo when camera access is granted.
	CaptureFromCamera(ctx context.Context) (domain.AcquisitionOutcome, error)

	// DeleteImage removes the stored photo. Memory is only cleared once
	// storage confirms the removal.
	DeleteImage(ctx context.Context) error

	// Flush blocks until every queued persistence write has completed.
	Flush(ctx context.Context) error

	// LastPersistError returns the most recent background write failure.
	LastPersistError() error
}

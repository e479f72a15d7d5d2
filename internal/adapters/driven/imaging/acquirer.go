package imaging

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
)

// Ensure Acquirer implements the interface.
var _ driven.ImageAcquirer = (*Acquirer)(nil)

// Acquirer joins a library picker and a camera into one port.
type Acquirer struct {
	library *LibraryPicker
	camera  *Camera
}

// NewAcquirer creates an acquirer. Either half may be nil, in which case
// that operation reports it is unavailable.
func NewAcquirer(library *LibraryPicker, camera *Camera) *Acquirer {
	return &Acquirer{library: library, camera: camera}
}

// PickFromLibrary delegates to the library picker.
func (a *Acquirer) PickFromLibrary(ctx context.Context, cfg domain.AcquisitionConfig) (*domain.AcquisitionResult, error) {
	if a.library == nil {
		return nil, domain.ErrLibraryUnavailable
	}
	return a.library.PickFromLibrary(ctx, cfg)
}

// CaptureFromCamera delegates to the camera.
func (a *Acquirer) CaptureFromCamera(ctx context.Context, cfg domain.AcquisitionConfig) (*domain.AcquisitionResult, error) {
	if a.camera == nil {
		return nil, domain.ErrNoCaptureDevice
	}
	return a.camera.CaptureFromCamera(ctx, cfg)
}

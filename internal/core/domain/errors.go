package domain

import "errors"

// Sentinel errors shared across layers. Adapters wrap them with context;
// callers test with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotImplemented    = errors.New("not implemented")
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrNoCaptureDevice means there is neither a capture command nor an
	// inbox directory to watch.
	ErrNoCaptureDevice = errors.New("no capture device configured")
	// ErrLibraryUnavailable means the image library directory can't be read.
	ErrLibraryUnavailable = errors.New("image library unavailable")
)

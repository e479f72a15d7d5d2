package tui

import "errors"

// ErrMissingContactReader is returned when the contact reader is not provided.
var ErrMissingContactReader = errors.New("tui: contact reader is required")

// ErrMissingProfileController is returned when the profile controller is not provided.
var ErrMissingProfileController = errors.New("tui: profile controller is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

// ErrNotRunning is returned by the chooser when no program is attached.
var ErrNotRunning = errors.New("tui: program is not running")

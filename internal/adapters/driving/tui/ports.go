// Package tui provides an interactive terminal user interface for roster.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/roster/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Contacts backs the contact list screen.
	Contacts driving.ContactReader

	// Profile backs the profile photo screen.
	Profile driving.ProfileImageController
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(contacts driving.ContactReader, profile driving.ProfileImageController) *Ports {
	return &Ports{
		Contacts: contacts,
		Profile:  profile,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Contacts == nil {
		return ErrMissingContactReader
	}
	if p.Profile == nil {
		return ErrMissingProfileController
	}
	return nil
}

package mcp

import (
	"github.com/custodia-labs/roster/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Contacts backs the list_contacts tool and the contacts resource.
	Contacts driving.ContactReader

	// Profile backs the profile tools and resource.
	Profile driving.ProfileImageController

	// SelectFile makes the next library pick return path. Optional; without
	// it the set_profile_image tool is not offered.
	SelectFile func(path string)
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Contacts == nil {
		return ErrMissingContactReader
	}
	if p.Profile == nil {
		return ErrMissingProfileController
	}
	return nil
}

package driving

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// ContactReader fetches the address book once per mount.
type ContactReader interface {
	// Initialize requests contacts permission and fetches the list.
	// A denial leaves the list empty and is not an error.
	Initialize(ctx context.Context) error

	// Contacts returns the fetched contacts.
	Contacts() []domain.Contact

	// Permission returns the contacts permission established at initialization.
	Permission() domain.PermissionState
}

package driven

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// ContactStore lists address book entries.
type ContactStore interface {
	// ListContacts returns every contact. Optional fields such as phone
	// numbers are only populated when requested.
	ListContacts(ctx context.Context, fields []domain.ContactField) ([]domain.Contact, error)
}

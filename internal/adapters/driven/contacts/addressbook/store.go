// Package addressbook reads contacts from a local TOML address book.
//
// The file is a list of [[contacts]] tables:
//
//	[[contacts]]
//	id = "ann"
//	name = "Ann"
//
//	  [[contacts.phone_numbers]]
//	  number = "555-1"
//	  label = "mobile"
//
// A missing file is an empty address book.
package addressbook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ContactStore = (*Store)(nil)

type fileFormat struct {
	Contacts []entry `toml:"contacts"`
}

type entry struct {
	ID           string  `toml:"id"`
	Name         string  `toml:"name"`
	PhoneNumbers []phone `toml:"phone_numbers"`
}

type phone struct {
	Number string `toml:"number"`
	Label  string `toml:"label"`
}

// Store reads the address book file on every call.
type Store struct {
	path string
}

// NewStore creates a store for the address book at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the address book file path.
func (s *Store) Path() string {
	return s.path
}

// ListContacts returns every contact in file order. Entries without an id
// get their 1-based position as id.
func (s *Store) ListContacts(ctx context.Context, fields []domain.ContactField) ([]domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading address book: %w", err)
	}

	var book fileFormat
	if err := toml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("parsing address book %s: %w", s.path, err)
	}

	withPhones := domain.HasField(fields, domain.ContactFieldPhoneNumbers)
	contacts := make([]domain.Contact, 0, len(book.Contacts))
	for i, e := range book.Contacts {
		contact := domain.Contact{ID: e.ID, Name: e.Name}
		if contact.ID == "" {
			contact.ID = strconv.Itoa(i + 1)
		}
		if withPhones {
			for _, p := range e.PhoneNumbers {
				contact.PhoneNumbers = append(contact.PhoneNumbers, domain.PhoneNumber{
					Number: p.Number,
					Label:  p.Label,
				})
			}
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

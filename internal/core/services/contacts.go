package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/core/ports/driving"
	"github.com/custodia-labs/roster/internal/logger"
)

// Ensure ContactService implements the interface.
var _ driving.ContactReader = (*ContactService)(nil)

// ContactService fetches the address book once and holds it for display.
type ContactService struct {
	permissions driven.PermissionService
	store       driven.ContactStore

	startup *initGate

	mu         sync.RWMutex
	contacts   []domain.Contact
	permission domain.PermissionState
}

// NewContactService creates a contact service.
func NewContactService(permissions driven.PermissionService, store driven.ContactStore) *ContactService {
	return &ContactService{
		permissions: permissions,
		store:       store,
		contacts:    []domain.Contact{},
		startup:     newInitGate(),
	}
}

// Initialize requests contacts permission and, if granted, fetches every
// contact with phone numbers. A denial is not an error. Once a call
// succeeds later calls return nil without fetching again; a failed or
// cancelled call is retried by the next one.
func (s *ContactService) Initialize(ctx context.Context) error {
	return s.startup.Do(ctx, s.initialize)
}

func (s *ContactService) initialize(ctx context.Context) error {
	state := domain.PermissionDenied
	if s.permissions != nil {
		got, err := s.permissions.Request(ctx, domain.PermissionContacts)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			logger.Warn("contacts: permission request failed, treating as denied: %v", err)
		} else if got.IsGranted() {
			state = domain.PermissionGranted
		}
	}

	s.mu.Lock()
	s.permission = state
	s.mu.Unlock()

	if !state.IsGranted() {
		logger.Info("contacts: access not granted")
		return nil
	}

	if s.store == nil {
		return domain.ErrNotImplemented
	}

	contacts, err := s.store.ListContacts(ctx, []domain.ContactField{domain.ContactFieldPhoneNumbers})
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}

	logger.Debug("contacts: fetched %d contacts", len(contacts))
	if len(contacts) == 0 {
		return nil
	}

	s.mu.Lock()
	s.contacts = contacts
	s.mu.Unlock()
	return nil
}

// Contacts returns a copy of the fetched contacts.
func (s *ContactService) Contacts() []domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Permission returns the contacts permission established at initialization.
func (s *ContactService) Permission() domain.PermissionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.permission
}

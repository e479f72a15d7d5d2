package mcp

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// mockContactReader is a mock implementation of driving.ContactReader.
type mockContactReader struct {
	contacts   []domain.Contact
	permission domain.PermissionState
	err        error
}

func (m *mockContactReader) Initialize(_ context.Context) error { return m.err }
func (m *mockContactReader) Contacts() []domain.Contact         { return m.contacts }
func (m *mockContactReader) Permission() domain.PermissionState {
	return m.permission
}

// mockProfileController is a mock implementation of driving.ProfileImageController.
type mockProfileController struct {
	state      domain.ProfileState
	initErr    error
	deleteErr  error
	persistErr error

	// selected is what the next pick returns; empty means cancelled.
	selected string
	picks    int
}

func (m *mockProfileController) Initialize(_ context.Context) error { return m.initErr }
func (m *mockProfileController) State() domain.ProfileState         { return m.state }

func (m *mockProfileController) PickFromLibrary(_ context.Context) (domain.AcquisitionOutcome, error) {
	m.picks++
	if m.selected == "" {
		return domain.OutcomeCancelled, nil
	}
	m.state.Image = &domain.ProfileImageRef{URI: "file://" + m.selected}
	return domain.OutcomeUpdated, nil
}

func (m *mockProfileController) CaptureFromCamera(_ context.Context) (domain.AcquisitionOutcome, error) {
	return domain.OutcomePermissionRejected, nil
}

func (m *mockProfileController) DeleteImage(_ context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.state.Image = nil
	return nil
}

func (m *mockProfileController) Flush(_ context.Context) error { return nil }
func (m *mockProfileController) LastPersistError() error       { return m.persistErr }

func sampleContacts() []domain.Contact {
	return []domain.Contact{
		{ID: "1", Name: "Ann Lee", PhoneNumbers: []domain.PhoneNumber{{Number: "555-1", Label: "mobile"}}},
		{ID: "2", Name: "Bob Stone", PhoneNumbers: []domain.PhoneNumber{{Number: "555-2"}}},
	}
}

// Package messages holds the bubbletea messages passed between the app and
// its screens.
package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// ViewType names a screen.
type ViewType int

// Screens in menu order.
const (
	ViewMenu ViewType = iota
	ViewContacts
	ViewProfile
	ViewHelp
)

var viewNames = [...]string{"menu", "contacts", "profile", "help"}

func (v ViewType) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "unknown"
	}
	return viewNames[v]
}

// ViewChanged asks the app to show View.
type ViewChanged struct{ View ViewType }

// Navigate returns a command that switches to view.
func Navigate(view ViewType) tea.Cmd {
	return func() tea.Msg { return ViewChanged{View: view} }
}

// ErrorOccurred reports an error the app should keep.
type ErrorOccurred struct{ Err error }

// Quit ends the program.
type Quit struct{}

// ContactsLoaded is the result of initialising the contact reader.
type ContactsLoaded struct {
	Contacts   []domain.Contact
	Permission domain.PermissionState
	Err        error
}

// ProfileLoaded is the result of initialising the profile controller.
type ProfileLoaded struct {
	State domain.ProfileState
	Err   error
}

// AcquisitionFinished is the result of a pick or capture.
type AcquisitionFinished struct {
	Outcome domain.AcquisitionOutcome
	Err     error
}

// PersistChecked reports how the background write after an update went.
type PersistChecked struct{ Err error }

// ProfileDeleted is the result of a delete.
type ProfileDeleted struct{ Err error }

// ChooseRequested hands the profile screen a list to choose from. Exactly
// one value must be sent on Reply; nil means the user backed out.
type ChooseRequested struct {
	Items []domain.LibraryItem
	Reply chan<- *domain.LibraryItem
}

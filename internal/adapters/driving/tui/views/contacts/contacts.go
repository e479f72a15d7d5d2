// Package contacts provides the contact list view for the TUI.
package contacts

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/roster/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driving"
)

// View shows the address book as a scrolling list.
type View struct {
	styles *styles.Styles
	reader driving.ContactReader
	ctx    context.Context
	list   *list.List

	permission domain.PermissionState
	count      int
	loading    bool
	err        error

	width  int
	height int
}

// NewView creates a contact list view.
func NewView(s *styles.Styles, reader driving.ContactReader) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		reader: reader,
		ctx:    context.Background(),
		list:   list.New(s),
		width:  80,
		height: 24,
	}
}

// SetContext sets the context used for loading.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init starts loading contacts. The reader fetches once, so revisiting the
// screen redraws the same list.
func (v *View) Init() tea.Cmd {
	if v.reader == nil {
		return nil
	}
	v.loading = true
	v.err = nil

	ctx, reader := v.ctx, v.reader
	return func() tea.Msg {
		err := reader.Initialize(ctx)
		return messages.ContactsLoaded{
			Contacts:   reader.Contacts(),
			Permission: reader.Permission(),
			Err:        err,
		}
	}
}

// Update handles messages for the contact list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ContactsLoaded:
		v.loading = false
		v.err = msg.Err
		v.permission = msg.Permission
		v.count = len(msg.Contacts)
		v.list.SetItems(toItems(msg.Contacts))
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return v, messages.Navigate(messages.ViewMenu)
		}
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func toItems(contacts []domain.Contact) []list.Item {
	items := make([]list.Item, 0, len(contacts))
	for _, c := range contacts {
		name := c.Name
		if name == "" {
			name = "(no name)"
		}
		details := make([]string, 0, len(c.PhoneNumbers))
		for _, p := range c.PhoneNumbers {
			if p.Label != "" {
				details = append(details, fmt.Sprintf("%s (%s)", p.Number, p.Label))
			} else {
				details = append(details, p.Number)
			}
		}
		items = append(items, list.Item{Title: name, Details: details})
	}
	return items
}

// View renders the contact list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Contacts"))
	if v.count > 0 {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  (%d)", v.count)))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading contacts..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
	case v.permission == domain.PermissionDenied:
		b.WriteString(v.styles.Warning.Render("Contacts access denied."))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Run 'roster permissions grant contacts' to allow it."))
	case v.list.IsEmpty():
		b.WriteString(v.styles.Normal.Render("No contacts found."))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("[j/k] Navigate  [esc] Back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	// title, blank line, footer spacing
	v.list.SetDimensions(width, height-5)
}

// Count returns the number of contacts shown.
func (v *View) Count() int {
	return v.count
}

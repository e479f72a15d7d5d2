// Package menu is the start screen: a short list of destinations.
package menu

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/roster/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/styles"
)

// Entry is one destination. A zero Target with Exit set quits.
type Entry struct {
	Label  string
	Hint   string
	Target messages.ViewType
	Exit   bool
}

// DefaultEntries lists the screens reachable from the menu.
func DefaultEntries() []Entry {
	return []Entry{
		{Label: "Contacts", Hint: "browse the address book", Target: messages.ViewContacts},
		{Label: "Profile", Hint: "set or remove your photo", Target: messages.ViewProfile},
		{Label: "Help", Hint: "keys and commands", Target: messages.ViewHelp},
		{Label: "Quit", Exit: true},
	}
}

// View is the menu screen. The cursor wraps at both ends and digits jump
// straight to an entry.
type View struct {
	styles  *styles.Styles
	keys    *keymap.KeyMap
	entries []Entry
	cursor  int
	width   int
	height  int
	sized   bool
}

// NewView creates the menu. Nil styles or keys use the defaults.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:  s,
		keys:    km,
		entries: DefaultEntries(),
		width:   80,
		height:  24,
	}
}

// Init has nothing to load.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor or activates an entry.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v, v.handleKey(msg.String())
	}
	return v, nil
}

func (v *View) handleKey(k string) tea.Cmd {
	switch {
	case keymap.Matches(k, v.keys.Up):
		v.cursor = (v.cursor - 1 + len(v.entries)) % len(v.entries)
	case keymap.Matches(k, v.keys.Down):
		v.cursor = (v.cursor + 1) % len(v.entries)
	case keymap.Matches(k, v.keys.Select):
		return v.activate(v.cursor)
	case keymap.Matches(k, v.keys.Quit):
		return tea.Quit
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(v.entries) {
			v.cursor = n - 1
			return v.activate(v.cursor)
		}
	}
	return nil
}

func (v *View) activate(i int) tea.Cmd {
	entry := v.entries[i]
	if entry.Exit {
		return tea.Quit
	}
	return messages.Navigate(entry.Target)
}

// View renders the entries, numbered for the digit shortcuts.
func (v *View) View() string {
	if !v.sized {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Roster"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Contacts and profile photo"))
	b.WriteString("\n\n")

	var rows strings.Builder
	for i, e := range v.entries {
		label := fmt.Sprintf("%d  %s", i+1, e.Label)
		if i == v.cursor {
			rows.WriteString("> " + v.styles.Selected.Render(label))
		} else {
			rows.WriteString("  " + v.styles.Normal.Render(label))
		}
		if e.Hint != "" {
			rows.WriteString("   " + v.styles.Muted.Render(e.Hint))
		}
		if i < len(v.entries)-1 {
			rows.WriteString("\n")
		}
	}
	b.WriteString(v.styles.Panel.Render(rows.String()))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("[j/k] move  [enter] open  [1-4] jump  [q] quit"))

	return b.String()
}

// SetDimensions records the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.sized = true
}

// Cursor returns the highlighted entry index.
func (v *View) Cursor() int {
	return v.cursor
}

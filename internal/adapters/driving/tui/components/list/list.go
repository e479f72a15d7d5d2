// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/roster/internal/adapters/driving/tui/styles"
)

// Item is one row: a title line followed by indented detail lines.
type Item struct {
	Title   string
	Details []string
}

// List displays items in a navigable, scrolling list.
type List struct {
	items    []Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// New creates a new list component.
func New(s *styles.Styles) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &List{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of the list.
func (l *List) View() string {
	if len(l.items) == 0 {
		return ""
	}

	start, end := l.window()
	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i))
	}
	return strings.Join(lines, "\n")
}

// window returns the range of items that fit in the current height.
// Rows are variable height, so the first visible row is pulled back from
// the selection until the budget is spent.
func (l *List) window() (start, end int) {
	budget := l.height
	if budget < 1 {
		budget = 1
	}

	start = l.selected
	used := l.rowHeight(start)
	for start > 0 && used+l.rowHeight(start-1) <= budget {
		start--
		used += l.rowHeight(start)
	}

	end = l.selected + 1
	for end < len(l.items) && used+l.rowHeight(end) <= budget {
		used += l.rowHeight(end)
		end++
	}
	return start, end
}

func (l *List) rowHeight(i int) int {
	return 1 + len(l.items[i].Details)
}

func (l *List) renderItem(i int) string {
	item := l.items[i]
	title := truncate(item.Title, l.width-4)

	var b strings.Builder
	if i == l.selected {
		b.WriteString(l.styles.Selected.Render("> " + title))
	} else {
		b.WriteString(l.styles.Normal.Render("  " + title))
	}
	for _, detail := range item.Details {
		b.WriteString("\n")
		b.WriteString(l.styles.Muted.Render("    " + truncate(detail, l.width-6)))
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if limit < 10 {
		limit = 10
	}
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}

// SetItems replaces the list contents and resets the selection.
func (l *List) SetItems(items []Item) {
	l.items = items
	l.selected = 0
}

// Items returns the current items.
func (l *List) Items() []Item {
	return l.items
}

// Selected returns the index of the selected item.
func (l *List) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *List) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// MoveUp moves selection up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *List) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *List) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *List) IsEmpty() bool {
	return len(l.items) == 0
}

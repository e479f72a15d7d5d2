// Package status is the one-line bar at the bottom of the profile screen.
package status

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/roster/internal/adapters/driving/tui/styles"
)

// Tone says how a message should read.
type Tone int

const (
	// Idle is the resting state.
	Idle Tone = iota
	// Busy means an operation is in flight.
	Busy
	// OK reports a finished operation.
	OK
	// Warn reports something the user should notice, like a cancellation.
	Warn
	// Failed reports an error.
	Failed
)

// Bar shows a message on the left and key hints on the right.
type Bar struct {
	styles  *styles.Styles
	hints   []key.Binding
	tone    Tone
	message string
	width   int
}

// NewBar creates an idle bar. Nil styles use the defaults.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{styles: s, width: 80}
}

// Set replaces the message and its tone.
func (b *Bar) Set(tone Tone, message string) {
	b.tone, b.message = tone, message
}

// Clear returns the bar to idle.
func (b *Bar) Clear() {
	b.Set(Idle, "")
}

// Tone returns the current tone.
func (b *Bar) Tone() Tone { return b.tone }

// Message returns the current message.
func (b *Bar) Message() string { return b.message }

// SetHints sets the bindings listed on the right.
func (b *Bar) SetHints(bindings []key.Binding) {
	b.hints = bindings
}

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// View renders the bar across its full width. When both sides do not fit
// they are separated by one space.
func (b *Bar) View() string {
	left := b.left()
	right := b.right()
	gap := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) left() string {
	text := b.message
	style := b.styles.Muted
	switch b.tone {
	case Busy:
		style = b.styles.Warning
		if text == "" {
			text = "Working..."
		}
	case OK:
		style = b.styles.Success
		if text == "" {
			text = "Done"
		}
	case Warn:
		style = b.styles.Warning
	case Failed:
		style = b.styles.Error
		if text == "" {
			text = "Error"
		} else {
			text = "Error: " + text
		}
	default:
		if text == "" {
			text = "Ready"
		}
	}
	return style.Render(text)
}

func (b *Bar) right() string {
	parts := make([]string, len(b.hints))
	for i, kb := range b.hints {
		h := kb.Help()
		parts[i] = h.Key + ": " + h.Desc
	}
	return b.styles.Muted.Render(strings.Join(parts, " | "))
}

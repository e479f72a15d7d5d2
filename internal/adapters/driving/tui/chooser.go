package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/roster/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
)

// Ensure ChoiceBroker implements the interface.
var _ driven.ImageChooser = (*ChoiceBroker)(nil)

// ChoiceBroker lets the library picker ask the running program which photo
// to use. Choose is called from a command goroutine; the request is posted
// to the program and the reply comes back from the profile view.
type ChoiceBroker struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewChoiceBroker creates a broker with no program attached.
func NewChoiceBroker() *ChoiceBroker {
	return &ChoiceBroker{}
}

// Attach routes requests through send, usually (*tea.Program).Send.
// Passing nil detaches the broker.
func (b *ChoiceBroker) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	b.mu.Unlock()
}

// Choose blocks until the user picks an item, backs out, or ctx ends.
func (b *ChoiceBroker) Choose(ctx context.Context, items []domain.LibraryItem) (*domain.LibraryItem, error) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send == nil {
		return nil, ErrNotRunning
	}

	reply := make(chan *domain.LibraryItem, 1)
	send(messages.ChooseRequested{Items: items, Reply: reply})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case item := <-reply:
		return item, nil
	}
}

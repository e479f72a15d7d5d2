package permission

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/logger"
)

// Ensure Service implements the interface.
var _ driven.PermissionService = (*Service)(nil)

// ErrNoTerminal is returned by a Prompter that has nobody to ask.
var ErrNoTerminal = errors.New("no interactive terminal")

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Service resolves permission requests from remembered decisions, asking
// the user once for anything undecided.
type Service struct {
	config   driven.ConfigStore
	prompter Prompter

	// mu serialises requests so two prompts never share the terminal.
	mu sync.Mutex
}

// NewService creates a permission service. A nil prompter denies every
// undecided request without remembering the answer.
func NewService(config driven.ConfigStore, prompter Prompter) *Service {
	return &Service{
		config:   config,
		prompter: prompter,
	}
}

// Request returns the decision for kind, asking the user if none is stored.
func (s *Service) Request(ctx context.Context, kind domain.PermissionKind) (domain.PermissionState, error) {
	if !kind.IsValid() {
		return domain.PermissionUnknown, fmt.Errorf("%w: permission %q", domain.ErrInvalidInput, kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config != nil {
		if state := domain.ParsePermissionState(s.config.GetString(kind.ConfigKey())); state != domain.PermissionUnknown {
			return state, nil
		}
	}

	if s.prompter == nil {
		return domain.PermissionDenied, nil
	}

	allowed, err := s.prompter.Confirm(ctx, question(kind))
	if errors.Is(err, ErrNoTerminal) {
		logger.Debug("no terminal to ask for %s access, denying for this run", kind)
		return domain.PermissionDenied, nil
	}
	if err != nil {
		return domain.PermissionUnknown, fmt.Errorf("asking for %s access: %w", kind, err)
	}

	state := domain.PermissionDenied
	if allowed {
		state = domain.PermissionGranted
	}

	if s.config != nil {
		if err := s.config.Set(kind.ConfigKey(), state.String()); err != nil {
			logger.Warn("failed to remember %s permission: %v", kind, err)
		}
	}
	return state, nil
}

func question(kind domain.PermissionKind) string {
	switch kind {
	case domain.PermissionContacts:
		return "Allow roster to read your contacts?"
	case domain.PermissionCamera:
		return "Allow roster to use the camera?"
	default:
		return fmt.Sprintf("Allow roster to access %s?", kind)
	}
}

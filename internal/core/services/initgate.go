package services

import "context"

// initGate runs an initialization until it first succeeds. A failed run,
// including one cut short by its context, leaves the gate open so the next
// caller tries again. Callers queue behind a run in progress but give up
// when their own context ends.
type initGate struct {
	sem  chan struct{}
	done bool
}

func newInitGate() *initGate {
	return &initGate{sem: make(chan struct{}, 1)}
}

// Do runs fn unless an earlier call already succeeded.
func (g *initGate) Do(ctx context.Context, fn func(context.Context) error) error {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-g.sem }()

	if g.done {
		return nil
	}
	if err := fn(ctx); err != nil {
		return err
	}
	g.done = true
	return nil
}

package permission

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// TerminalPrompter asks questions on an interactive terminal.
//
// One goroutine reads input for the prompter's whole life. A line is only
// taken as an answer while a question is waiting for one; lines typed at
// any other time, such as a late reply to a question whose context ended,
// are dropped.
type TerminalPrompter struct {
	in         io.Reader
	out        io.Writer
	isTerminal func() bool

	ask sync.Mutex

	startOnce sync.Once
	mu        sync.Mutex
	waiting   bool
	lines     chan string
}

// NewTerminalPrompter creates a prompter bound to stdin and stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:  os.Stdin,
		out: os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Confirm prints question and reads a y/N answer. Anything other than
// y or yes is a no, and so is end of input. Calls are answered one at a
// time.
func (p *TerminalPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if p.isTerminal != nil && !p.isTerminal() {
		return false, ErrNoTerminal
	}

	p.ask.Lock()
	defer p.ask.Unlock()

	if _, err := fmt.Fprintf(p.out, "%s [y/N] ", question); err != nil {
		return false, err
	}

	p.mu.Lock()
	p.waiting = true
	p.mu.Unlock()
	p.startOnce.Do(p.startReader)

	select {
	case <-ctx.Done():
		p.abandon()
		return false, ctx.Err()
	case line := <-p.lines:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// abandon withdraws the waiting question, discarding a line that was
// handed over just as the context ended.
func (p *TerminalPrompter) abandon() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.waiting {
		p.waiting = false
		return
	}
	select {
	case <-p.lines:
	default:
	}
}

func (p *TerminalPrompter) startReader() {
	p.lines = make(chan string, 1)
	go func() {
		r := bufio.NewReader(p.in)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				p.deliver(line)
			}
			if err != nil {
				p.mu.Lock()
				close(p.lines)
				p.mu.Unlock()
				return
			}
		}
	}()
}

// deliver hands line to the waiting question, if there is one.
func (p *TerminalPrompter) deliver(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.waiting {
		return
	}
	p.waiting = false
	p.lines <- line
}

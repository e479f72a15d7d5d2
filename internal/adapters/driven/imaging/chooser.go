package imaging

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
)

// Ensure the choosers implement the interface.
var (
	_ driven.ImageChooser = (*PromptChooser)(nil)
	_ driven.ImageChooser = (*FileChooser)(nil)
	_ driven.ImageChooser = ChooserFunc(nil)
)

// PromptChooser prints a numbered list and reads the choice.
type PromptChooser struct {
	in  io.Reader
	out io.Writer
}

// NewPromptChooser creates a chooser reading from in and writing to out.
func NewPromptChooser(in io.Reader, out io.Writer) *PromptChooser {
	return &PromptChooser{in: in, out: out}
}

// Choose lists candidates and returns the numbered one. An empty or
// invalid answer backs out.
func (c *PromptChooser) Choose(ctx context.Context, candidates []domain.LibraryItem) (*domain.LibraryItem, error) {
	for i, cand := range candidates {
		fmt.Fprintf(c.out, "  %d) %s  %s\n", i+1, cand.Name, cand.ModTime.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(c.out, "Choose an image [1-%d, empty to cancel]: ", len(candidates))

	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(c.in).ReadString('\n')
		answer <- strings.TrimSpace(line)
	}()

	var line string
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case line = <-answer:
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(candidates) {
		return nil, nil
	}
	chosen := candidates[n-1]
	return &chosen, nil
}

// FileChooser always selects one path, which need not be in the library.
type FileChooser struct {
	path string
}

// NewFileChooser creates a chooser for path.
func NewFileChooser(path string) *FileChooser {
	return &FileChooser{path: path}
}

// Choose returns the configured file as a library item.
func (c *FileChooser) Choose(_ context.Context, _ []domain.LibraryItem) (*domain.LibraryItem, error) {
	item, err := NewItem(c.path, domain.MediaAll)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

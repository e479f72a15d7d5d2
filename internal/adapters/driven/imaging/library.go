package imaging

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/logger"
)

// ChooserFunc adapts a function to driven.ImageChooser.
type ChooserFunc func(ctx context.Context, items []domain.LibraryItem) (*domain.LibraryItem, error)

// Choose calls f.
func (f ChooserFunc) Choose(ctx context.Context, items []domain.LibraryItem) (*domain.LibraryItem, error) {
	return f(ctx, items)
}

// LibraryPicker offers the files of one directory, newest first.
type LibraryPicker struct {
	dir string

	mu      sync.RWMutex
	chooser driven.ImageChooser
}

// NewLibraryPicker creates a picker over dir.
func NewLibraryPicker(dir string, chooser driven.ImageChooser) *LibraryPicker {
	return &LibraryPicker{dir: dir, chooser: chooser}
}

// Dir returns the library directory.
func (p *LibraryPicker) Dir() string {
	return p.dir
}

// SetChooser replaces the chooser. The TUI swaps in its own while running.
func (p *LibraryPicker) SetChooser(chooser driven.ImageChooser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chooser = chooser
}

// List returns the files mediaType accepts, newest first. Subdirectories
// and hidden files are skipped.
func (p *LibraryPicker) List(ctx context.Context, mediaType domain.MediaType) ([]domain.LibraryItem, error) {
	entries, err := os.ReadDir(p.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", domain.ErrLibraryUnavailable, p.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("reading library: %w", err)
	}

	var candidates []domain.LibraryItem
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || name[0] == '.' {
			continue
		}
		mt, ok := mimeType(name, mediaType)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Debug("skipping %s: %v", name, err)
			continue
		}
		candidates = append(candidates, newItem(filepath.Join(p.dir, name), mt, info.ModTime()))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ModTime.Equal(candidates[j].ModTime) {
			return candidates[i].Path < candidates[j].Path
		}
		return candidates[i].ModTime.After(candidates[j].ModTime)
	})
	return candidates, nil
}

// PickFromLibrary lists the library and asks the chooser for one file.
func (p *LibraryPicker) PickFromLibrary(ctx context.Context, cfg domain.AcquisitionConfig) (*domain.AcquisitionResult, error) {
	p.mu.RLock()
	chooser := p.chooser
	p.mu.RUnlock()
	if chooser == nil {
		return nil, fmt.Errorf("%w: no chooser configured", domain.ErrLibraryUnavailable)
	}

	var candidates []domain.LibraryItem
	if _, direct := chooser.(*FileChooser); !direct {
		var err error
		candidates, err = p.List(ctx, cfg.MediaType)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: no images in %s", domain.ErrLibraryUnavailable, p.dir)
		}
	}

	chosen, err := chooser.Choose(ctx, candidates)
	if errors.Is(err, context.Canceled) || (err == nil && chosen == nil) {
		return domain.CancelledResult(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("choosing image: %w", err)
	}

	return &domain.AcquisitionResult{Assets: []domain.Asset{chosen.Asset()}}, nil
}

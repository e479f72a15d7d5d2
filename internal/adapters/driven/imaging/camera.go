package imaging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/logger"
)

// OutputPlaceholder in a capture command is replaced by the target file.
const OutputPlaceholder = "{output}"

// defaultSettle is how long an inbox file must stay quiet before it is
// taken as complete.
const defaultSettle = 300 * time.Millisecond

// Camera captures a new photo into inboxDir.
type Camera struct {
	inboxDir string
	command  []string
	settle   time.Duration
}

// NewCamera creates a camera. With a command, capture runs it; without
// one, capture waits for a new file in inboxDir.
func NewCamera(inboxDir string, command []string) *Camera {
	return &Camera{
		inboxDir: inboxDir,
		command:  command,
		settle:   defaultSettle,
	}
}

// CaptureFromCamera takes one photo. Cancelling ctx while waiting is
// reported as the user backing out.
func (c *Camera) CaptureFromCamera(ctx context.Context, cfg domain.AcquisitionConfig) (*domain.AcquisitionResult, error) {
	if c.inboxDir == "" {
		return nil, domain.ErrNoCaptureDevice
	}
	if err := os.MkdirAll(c.inboxDir, 0700); err != nil {
		return nil, fmt.Errorf("creating camera inbox: %w", err)
	}

	if len(c.command) > 0 {
		return c.runCommand(ctx)
	}
	return c.watchInbox(ctx, cfg.MediaType)
}

func (c *Camera) runCommand(ctx context.Context) (*domain.AcquisitionResult, error) {
	output := filepath.Join(c.inboxDir, "capture-"+uuid.NewString()+".jpg")

	args := make([]string, 0, len(c.command))
	substituted := false
	for _, arg := range c.command[1:] {
		if strings.Contains(arg, OutputPlaceholder) {
			arg = strings.ReplaceAll(arg, OutputPlaceholder, output)
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, output)
	}

	logger.Debug("capture: %s %s", c.command[0], strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, c.command[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return domain.CancelledResult(), nil
		}
		return nil, fmt.Errorf("capture command failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	info, err := os.Stat(output)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() == 0) {
		// The tool exited cleanly without writing a photo.
		return domain.CancelledResult(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading capture: %w", err)
	}

	return &domain.AcquisitionResult{
		Assets: []domain.Asset{{URI: fileURI(output), MIMEType: "image/jpeg"}},
	}, nil
}

func (c *Camera) watchInbox(ctx context.Context, mediaType domain.MediaType) (*domain.AcquisitionResult, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(c.inboxDir); err != nil {
		return nil, fmt.Errorf("watching %s: %w", c.inboxDir, err)
	}
	logger.Info("waiting for a photo in %s", c.inboxDir)

	settle := time.NewTimer(time.Hour)
	settle.Stop()
	defer settle.Stop()

	var pending string
	for {
		select {
		case <-ctx.Done():
			return domain.CancelledResult(), nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil, errors.New("camera inbox watcher closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			if _, ok := mimeType(event.Name, mediaType); !ok {
				continue
			}
			pending = event.Name
			settle.Reset(c.settle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil, errors.New("camera inbox watcher closed")
			}
			return nil, fmt.Errorf("watching camera inbox: %w", err)

		case <-settle.C:
			item, err := NewItem(pending, mediaType)
			if err != nil {
				logger.Debug("ignoring %s: %v", pending, err)
				pending = ""
				continue
			}
			return &domain.AcquisitionResult{Assets: []domain.Asset{item.Asset()}}, nil
		}
	}
}

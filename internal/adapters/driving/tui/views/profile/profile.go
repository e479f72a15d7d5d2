// Package profile provides the profile photo view for the TUI.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/roster/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driving"
)

const modTimeLayout = "2006-01-02 15:04"

// View shows the current profile photo and drives pick, capture and delete.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	controller driving.ProfileImageController
	ctx        context.Context

	bar     *status.Bar
	chooser *list.List

	state   domain.ProfileState
	loading bool
	err     error

	// busy is set while a pick, capture or delete is in flight.
	busy bool
	// cancel aborts the in-flight pick or capture.
	cancel context.CancelFunc
	// choice is the pending library request, nil when not choosing.
	choice *messages.ChooseRequested

	width  int
	height int
}

// NewView creates a profile view.
func NewView(s *styles.Styles, km *keymap.KeyMap, controller driving.ProfileImageController) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	v := &View{
		styles:     s,
		keymap:     km,
		controller: controller,
		ctx:        context.Background(),
		bar:        status.NewBar(s),
		chooser:    list.New(s),
		width:      80,
		height:     24,
	}
	v.refreshHints()
	return v
}

// SetContext sets the parent context for controller calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the profile state. The controller initialises once; later
// visits only read the current state.
func (v *View) Init() tea.Cmd {
	if v.controller == nil {
		return nil
	}
	v.loading = true
	v.bar.Set(status.Busy, "Loading profile...")

	ctx, controller := v.ctx, v.controller
	return func() tea.Msg {
		err := controller.Initialize(ctx)
		return messages.ProfileLoaded{State: controller.State(), Err: err}
	}
}

// Update handles messages for the profile view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ProfileLoaded:
		v.loading = false
		v.err = msg.Err
		v.state = msg.State
		if msg.Err != nil {
			v.bar.Set(status.Failed, msg.Err.Error())
		} else {
			v.bar.Clear()
		}
		v.refreshHints()
		return v, nil

	case messages.ChooseRequested:
		return v.beginChoice(msg)

	case messages.AcquisitionFinished:
		return v.finishAcquisition(msg)

	case messages.PersistChecked:
		if msg.Err != nil {
			v.bar.Set(status.Failed, fmt.Sprintf("saving photo: %v", msg.Err))
		}
		return v, nil

	case messages.ProfileDeleted:
		v.busy = false
		if msg.Err != nil {
			v.bar.Set(status.Failed, msg.Err.Error())
		} else {
			v.bar.Set(status.OK, "Photo deleted.")
		}
		v.state = v.controller.State()
		v.refreshHints()
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if v.choice != nil {
		switch {
		case keymap.Matches(keyStr, v.keymap.Select):
			items := v.choice.Items
			v.reply(&items[v.chooser.Selected()])
		case keymap.Matches(keyStr, v.keymap.Back):
			v.reply(nil)
		default:
			v.chooser, _ = v.chooser.Update(msg)
		}
		return v, nil
	}

	if v.busy {
		if keymap.Matches(keyStr, v.keymap.Back) && v.cancel != nil {
			v.cancel()
			v.bar.Set(status.Busy, "Cancelling...")
		}
		return v, nil
	}

	switch {
	case keyStr == "esc" || keyStr == "q":
		return v, messages.Navigate(messages.ViewMenu)
	case v.loading || v.controller == nil:
		return v, nil
	case keymap.Matches(keyStr, v.keymap.Pick):
		v.bar.Set(status.Busy, "Opening library...")
		return v, v.acquire(v.controller.PickFromLibrary)
	case keymap.Matches(keyStr, v.keymap.Capture):
		v.bar.Set(status.Busy, "Waiting for photo... [esc] cancel")
		return v, v.acquire(v.controller.CaptureFromCamera)
	case keymap.Matches(keyStr, v.keymap.Delete) && v.state.HasImage():
		v.busy = true
		v.bar.Set(status.Busy, "Deleting photo...")
		ctx, controller := v.ctx, v.controller
		return v, func() tea.Msg {
			return messages.ProfileDeleted{Err: controller.DeleteImage(ctx)}
		}
	}
	return v, nil
}

// acquire runs a pick or capture under a cancellable context.
func (v *View) acquire(run func(context.Context) (domain.AcquisitionOutcome, error)) tea.Cmd {
	ctx, cancel := context.WithCancel(v.ctx)
	v.busy = true
	v.cancel = cancel
	return func() tea.Msg {
		outcome, err := run(ctx)
		return messages.AcquisitionFinished{Outcome: outcome, Err: err}
	}
}

func (v *View) beginChoice(req messages.ChooseRequested) (*View, tea.Cmd) {
	if !v.busy || v.choice != nil || len(req.Items) == 0 {
		req.Reply <- nil
		return v, nil
	}

	v.choice = &req
	items := make([]list.Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, list.Item{
			Title:   item.Name,
			Details: []string{item.ModTime.Format(modTimeLayout)},
		})
	}
	v.chooser.SetItems(items)
	v.bar.Set(status.Busy, "Choose a photo")
	v.refreshHints()
	return v, nil
}

// reply answers the pending library request exactly once.
func (v *View) reply(item *domain.LibraryItem) {
	if v.choice == nil {
		return
	}
	v.choice.Reply <- item
	v.choice = nil
	v.refreshHints()
}

func (v *View) finishAcquisition(msg messages.AcquisitionFinished) (*View, tea.Cmd) {
	v.reply(nil)
	v.busy = false
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.state = v.controller.State()
	v.refreshHints()

	switch msg.Outcome {
	case domain.OutcomeUpdated:
		v.bar.Set(status.OK, "Photo updated.")
		ctx, controller := v.ctx, v.controller
		return v, func() tea.Msg {
			if err := controller.Flush(ctx); err != nil {
				return messages.PersistChecked{Err: err}
			}
			return messages.PersistChecked{Err: controller.LastPersistError()}
		}
	case domain.OutcomeCancelled:
		v.bar.Set(status.Warn, "Cancelled.")
	case domain.OutcomePermissionRejected:
		v.bar.Set(status.Warn, "Camera access denied. Run 'roster permissions grant camera' to allow it.")
	case domain.OutcomeFailed:
		if msg.Err != nil {
			v.bar.Set(status.Failed, msg.Err.Error())
		} else {
			v.bar.Set(status.Failed, "")
		}
	}
	return v, nil
}

func (v *View) refreshHints() {
	if v.choice != nil {
		v.bar.SetHints(v.keymap.ChooserHelp())
		return
	}
	v.bar.SetHints(v.keymap.ProfileHelp(v.state.HasImage()))
}

// View renders the profile screen.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Profile"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading profile..."))
		b.WriteString("\n\n")
		b.WriteString(v.bar.View())
		return b.String()
	}

	var panel strings.Builder
	if v.state.HasImage() {
		panel.WriteString(v.styles.Normal.Render("Photo: " + v.state.Image.URI))
	} else {
		panel.WriteString(v.styles.Muted.Render("No profile photo."))
	}
	panel.WriteString("\n")
	panel.WriteString(v.styles.Muted.Render("Camera: "))
	panel.WriteString(v.styles.Permission(v.state.CameraPermission).Render(v.state.CameraPermission.String()))
	b.WriteString(v.styles.Panel.Render(panel.String()))
	b.WriteString("\n\n")

	if v.choice != nil {
		b.WriteString(v.styles.Subtitle.Render("Choose a photo"))
		b.WriteString("\n")
		b.WriteString(v.chooser.View())
		b.WriteString("\n\n")
	} else {
		b.WriteString(v.renderActions())
		b.WriteString("\n\n")
	}

	b.WriteString(v.bar.View())
	return b.String()
}

// renderActions lists the available controls. Delete is only offered
// while a photo is set.
func (v *View) renderActions() string {
	bindings := []key.Binding{v.keymap.Pick, v.keymap.Capture}
	if v.state.HasImage() {
		bindings = append(bindings, v.keymap.Delete)
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, capitalise(h.Desc)))
	}
	return v.styles.Normal.Render(strings.Join(parts, "  "))
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.bar.SetWidth(width)
	// title, photo panel, header and status bar
	v.chooser.SetDimensions(width, height-10)
}

// State returns the last observed profile state.
func (v *View) State() domain.ProfileState {
	return v.state
}

// Choosing reports whether a library request is waiting for the user.
func (v *View) Choosing() bool {
	return v.choice != nil
}

// Busy reports whether a pick, capture or delete is in flight.
func (v *View) Busy() bool {
	return v.busy
}

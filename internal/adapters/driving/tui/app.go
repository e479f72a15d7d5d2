package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/roster/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/views/contacts"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/views/profile"
)

// App is the root bubbletea model. It owns the three screens and routes
// input to whichever is showing.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	menu     *menu.View
	contacts *contacts.View
	profile  *profile.View

	current messages.ViewType
	err     error

	width  int
	height int
	sized  bool
}

var _ tea.Model = (*App)(nil)

// NewApp builds the screens over ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		keys:     km,
		menu:     menu.NewView(s, km),
		contacts: contacts.NewView(s, ports.Contacts),
		profile:  profile.NewView(s, km, ports.Profile),
		current:  messages.ViewMenu,
	}, nil
}

// WithContext scopes every service call the screens make to ctx.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.contacts.SetContext(ctx)
	a.profile.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tea.SetWindowTitle("roster"))
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		return a, a.routeKey(msg)

	case messages.ViewChanged:
		return a, a.show(msg.View)

	case messages.ContactsLoaded:
		var cmd tea.Cmd
		a.contacts, cmd = a.contacts.Update(msg)
		return a, cmd

	case messages.ProfileLoaded, messages.AcquisitionFinished, messages.PersistChecked,
		messages.ProfileDeleted, messages.ChooseRequested:
		return a, a.routeProfile(msg)

	case messages.ErrorOccurred:
		a.err = msg.Err
	case messages.Quit:
		return a, tea.Quit
	}
	return a, nil
}

// routeKey sends a key press to the visible screen.
func (a *App) routeKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.current {
	case messages.ViewMenu:
		a.menu, cmd = a.menu.Update(msg)
	case messages.ViewContacts:
		a.contacts, cmd = a.contacts.Update(msg)
	case messages.ViewProfile:
		a.profile, cmd = a.profile.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(msg.String(), a.keys.Back, a.keys.Quit) {
			a.current = messages.ViewMenu
		}
	}
	return cmd
}

// routeProfile delivers profile results whatever is on screen: they can
// land after the user has moved on, and a choose request blocks the
// acquisition until it is answered, so it also brings the profile forward.
func (a *App) routeProfile(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(messages.ChooseRequested); ok {
		a.current = messages.ViewProfile
	}
	var cmd tea.Cmd
	a.profile, cmd = a.profile.Update(msg)
	return cmd
}

// show switches screens and starts the new screen's loading.
func (a *App) show(view messages.ViewType) tea.Cmd {
	a.current = view
	switch view {
	case messages.ViewContacts:
		return a.contacts.Init()
	case messages.ViewProfile:
		return a.profile.Init()
	default:
		return nil
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.sized {
		return "Initialising..."
	}

	switch a.current {
	case messages.ViewContacts:
		return a.contacts.View()
	case messages.ViewProfile:
		return a.profile.View()
	case messages.ViewHelp:
		return a.helpView()
	default:
		return a.menu.View()
	}
}

// helpView lists the bindings of each screen.
func (a *App) helpView() string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Menu", []key.Binding{a.keys.Up, a.keys.Down, a.keys.Select, a.keys.Quit}},
		{"Contacts", a.keys.ListHelp()},
		{"Profile", a.keys.ProfileHelp(true)},
		{"Choosing a photo", a.keys.ChooserHelp()},
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, sec := range sections {
		b.WriteString(a.styles.Subtitle.Render(sec.title))
		b.WriteString("\n")
		for _, kb := range sec.bindings {
			h := kb.Help()
			fmt.Fprintf(&b, "  %-8s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("Taking a photo needs camera permission: roster permissions grant camera"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the program on the alternate screen.
func (a *App) Run() error {
	_, err := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx)).Run()
	return err
}

// CurrentView returns the visible screen.
func (a *App) CurrentView() messages.ViewType {
	return a.current
}

// Err returns the last reported error.
func (a *App) Err() error {
	return a.err
}

// Ready reports whether the terminal size is known.
func (a *App) Ready() bool {
	return a.sized
}

// SetDimensions resizes the app and every screen.
func (a *App) SetDimensions(width, height int) {
	a.width, a.height = width, height
	a.sized = true
	a.menu.SetDimensions(width, height)
	a.contacts.SetDimensions(width, height)
	a.profile.SetDimensions(width, height)
}

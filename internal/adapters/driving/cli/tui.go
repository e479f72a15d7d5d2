package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/roster/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for roster.

Permission questions are asked before the UI starts, so the screens only
show the answers.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select
  p        - Pick a photo from the library
  c        - Take a photo
  d        - Delete the photo
  Esc      - Back / Cancel capture
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panic: %v", r)
		}
	}()

	ports := tui.NewPorts(contactReader, profileController)
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Prompts need the plain terminal, so settle permissions before the
	// alternate screen takes over. Both controllers initialise once.
	ctx := cmd.Context()
	if err := contactReader.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	if err := profileController.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	broker := tui.NewChoiceBroker()
	if choosers.Set != nil {
		choosers.Set(broker)
	}

	app.WithContext(ctx)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	broker.Attach(p.Send)
	defer broker.Attach(nil)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

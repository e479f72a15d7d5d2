package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/roster/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Settings live in ~/.roster/config.toml. A ROSTER_* environment
variable takes precedence over the matching file entry.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings and the settable keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store one setting",
	Long: `Store one setting under its dotted key, for example:

  roster settings set library.dir ~/Pictures/avatars
  roster settings set camera.command "fswebcam --no-banner {output}"`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

type settingsSection struct {
	title string
	rows  [][2]string
}

// describeSettings lays the effective settings out as titled label/value
// rows.
func describeSettings(s *domain.AppSettings) []settingsSection {
	google := "not configured"
	if s.Contacts.Google.IsConfigured() {
		google = "configured"
	}
	command := "(not set, waiting on inbox)"
	if s.Camera.IsConfigured() {
		command = strings.Join(s.Camera.Command, " ")
	}

	return []settingsSection{
		{"Storage", [][2]string{
			{"Backend", s.Storage.Description()},
			{"Data dir", s.DataDir},
		}},
		{"Contacts", [][2]string{
			{"Source", s.Contacts.Source.Description()},
			{"Address book", s.Contacts.AddressBookPath},
			{"Google", google},
		}},
		{"Library", [][2]string{
			{"Dir", s.Library.Dir},
		}},
		{"Camera", [][2]string{
			{"Inbox", s.Camera.InboxDir},
			{"Command", command},
		}},
	}
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	for _, sec := range describeSettings(settings) {
		cmd.Printf("[%s]\n", sec.title)
		for _, row := range sec.rows {
			cmd.Printf("  %s: %s\n", row[0], row[1])
		}
		cmd.Println()
	}

	cmd.Println("Keys:")
	for _, key := range settingsService.Keys() {
		cmd.Printf("  %s\n", key)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

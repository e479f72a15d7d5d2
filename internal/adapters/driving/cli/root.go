// Package cli provides the cobra command tree for roster.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/core/ports/driving"
	"github.com/custodia-labs/roster/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services configured by SetServices.
var (
	contactReader     driving.ContactReader
	profileController driving.ProfileImageController
	settingsService   driving.SettingsService
	choosers          ChooserConfig
	googleLogin       LoginFunc
)

// LoginFunc signs in to Google and returns a refresh token. notify receives
// the authorization URL so it can be printed.
type LoginFunc func(ctx context.Context, notify func(url string)) (string, error)

// Services bundles the driving ports the commands use.
type Services struct {
	Contacts driving.ContactReader
	Profile  driving.ProfileImageController
	Settings driving.SettingsService
}

// ChooserConfig controls how a library image is chosen.
type ChooserConfig struct {
	// Set replaces the library chooser.
	Set func(driven.ImageChooser)
	// File returns a chooser that always selects path.
	File func(path string) driven.ImageChooser
}

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Contacts and profile photo manager for the terminal",
	Long: `Roster shows your address book and manages a profile photo.

Contacts are read from a local TOML address book or Google Contacts.
The profile photo is picked from an image library or captured with a
camera command, and its location is stored locally.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// SetServices sets the services used by the commands.
func SetServices(s Services) {
	contactReader = s.Contacts
	profileController = s.Profile
	settingsService = s.Settings
}

// SetChoosers sets how library images are chosen.
func SetChoosers(c ChooserConfig) {
	choosers = c
}

// SetGoogleLogin sets the sign-in flow used by 'contacts login'.
func SetGoogleLogin(fn LoginFunc) {
	googleLogin = fn
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which is cancelled on
// interrupt by the caller. Command output goes to stdout.
func ExecuteContext(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

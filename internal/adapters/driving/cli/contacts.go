package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/roster/internal/core/domain"
)

const keyGoogleRefreshToken = "contacts.google.refresh_token" //nolint:gosec // config key name

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List contacts with phone numbers",
	Long: `List every contact in the configured address book with its phone numbers.

Roster asks for contacts access the first time. The answer is remembered;
change it with 'roster permissions grant contacts' or 'deny'.`,
	Args: cobra.NoArgs,
	RunE: runContacts,
}

var contactsLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Google Contacts",
	Long: `Open a browser to sign in to Google and save a refresh token for
read-only contacts access.

Set contacts.google.client_id (and client_secret) first, then switch the
source with 'roster settings set contacts.source google'.`,
	Args: cobra.NoArgs,
	RunE: runContactsLogin,
}

func init() {
	contactsCmd.Flags().Bool("json", false, "Print contacts as JSON")
	contactsCmd.AddCommand(contactsLoginCmd)
	rootCmd.AddCommand(contactsCmd)
}

func runContactsLogin(cmd *cobra.Command, _ []string) error {
	if googleLogin == nil {
		return errors.New("google sign-in not configured")
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	notify := func(url string) {
		cmd.PrintErrln("Opening your browser to sign in. If it does not open, visit:")
		cmd.PrintErrln("  " + url)
	}

	token, err := googleLogin(cmd.Context(), notify)
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}
	if err := settingsService.Set(keyGoogleRefreshToken, token); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}

	cmd.Println("Signed in. Refresh token saved.")
	cmd.Println("Run 'roster settings set contacts.source google' to read Google Contacts.")
	return nil
}

func runContacts(cmd *cobra.Command, _ []string) error {
	if contactReader == nil {
		return errors.New("contacts service not configured")
	}

	if err := contactReader.Initialize(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}

	contacts := contactReader.Contacts()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(contacts)
	}

	if contactReader.Permission() != domain.PermissionGranted {
		cmd.Println("Contacts access denied.")
		cmd.Println("Run 'roster permissions grant contacts' to allow it.")
		return nil
	}

	if len(contacts) == 0 {
		cmd.Println("No contacts found.")
		return nil
	}

	for _, c := range contacts {
		cmd.Println(c.Name)
		for _, p := range c.PhoneNumbers {
			if p.Label != "" {
				cmd.Printf("  %s (%s)\n", p.Number, p.Label)
			} else {
				cmd.Printf("  %s\n", p.Number)
			}
		}
	}
	return nil
}

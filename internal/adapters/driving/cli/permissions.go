package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/roster/internal/core/domain"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Show or change remembered permissions",
	Long: `Roster asks before reading contacts or using the camera and remembers
the answer. Use these commands to review or change those answers.

Kinds: contacts, camera`,
	RunE: runPermissionsShow,
}

var permissionsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show remembered permissions",
	Args:  cobra.NoArgs,
	RunE:  runPermissionsShow,
}

var permissionsGrantCmd = &cobra.Command{
	Use:   "grant [kind]",
	Short: "Allow access",
	Args:  cobra.ExactArgs(1),
	RunE:  permissionSetter(domain.PermissionGranted),
}

var permissionsDenyCmd = &cobra.Command{
	Use:   "deny [kind]",
	Short: "Deny access",
	Args:  cobra.ExactArgs(1),
	RunE:  permissionSetter(domain.PermissionDenied),
}

var permissionsResetCmd = &cobra.Command{
	Use:   "reset [kind]",
	Short: "Forget the answer so roster asks again",
	Args:  cobra.ExactArgs(1),
	RunE:  permissionSetter(domain.PermissionUnknown),
}

func init() {
	permissionsCmd.AddCommand(permissionsShowCmd)
	permissionsCmd.AddCommand(permissionsGrantCmd)
	permissionsCmd.AddCommand(permissionsDenyCmd)
	permissionsCmd.AddCommand(permissionsResetCmd)
	rootCmd.AddCommand(permissionsCmd)
}

func runPermissionsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, kind := range domain.PermissionKinds() {
		cmd.Printf("%-10s %s\n", kind, settingsService.Permission(kind))
	}
	return nil
}

func permissionSetter(state domain.PermissionState) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}

		kind := domain.PermissionKind(args[0])
		if !kind.IsValid() {
			return fmt.Errorf("unknown permission %q (valid: contacts, camera)", args[0])
		}

		if err := settingsService.SetPermission(kind, state); err != nil {
			return fmt.Errorf("failed to save permission: %w", err)
		}
		cmd.Printf("%s permission: %s\n", kind, state)
		return nil
	}
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/roster/internal/core/domain"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the profile photo",
	Long: `Show, pick, capture or delete the profile photo.

The photo itself is never copied; roster stores a file:// reference to it.`,
	RunE: runProfileShow,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile photo",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profilePickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a photo from the image library",
	Long: `Pick a photo from the image library directory (library.dir).

Without --file the library is listed newest first and you choose by number.`,
	Args: cobra.NoArgs,
	RunE: runProfilePick,
}

var profileCaptureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a new photo with the camera",
	Long: `Capture a new photo.

If camera.command is set it is run with {output} replaced by the target file.
Otherwise roster waits for a new image in camera.inbox_dir. Press Ctrl+C to
cancel.`,
	Args: cobra.NoArgs,
	RunE: runProfileCapture,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the profile photo reference",
	Args:  cobra.NoArgs,
	RunE:  runProfileDelete,
}

func init() {
	profilePickCmd.Flags().StringP("file", "f", "", "Use this image instead of choosing from the library")
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profilePickCmd)
	profileCmd.AddCommand(profileCaptureCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

func initProfile(cmd *cobra.Command) error {
	if profileController == nil {
		return errors.New("profile service not configured")
	}
	if err := profileController.Initialize(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	return nil
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if err := initProfile(cmd); err != nil {
		return err
	}

	state := profileController.State()
	if state.HasImage() {
		cmd.Printf("Profile image: %s\n", state.Image.URI)
	} else {
		cmd.Println("No profile image set.")
	}
	cmd.Printf("Camera permission: %s\n", state.CameraPermission)
	return nil
}

func runProfilePick(cmd *cobra.Command, _ []string) error {
	if err := initProfile(cmd); err != nil {
		return err
	}

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		if choosers.Set == nil || choosers.File == nil {
			return errors.New("image chooser not configured")
		}
		choosers.Set(choosers.File(file))
	}

	outcome, err := profileController.PickFromLibrary(cmd.Context())
	return reportOutcome(cmd, outcome, err)
}

func runProfileCapture(cmd *cobra.Command, _ []string) error {
	if err := initProfile(cmd); err != nil {
		return err
	}

	outcome, err := profileController.CaptureFromCamera(cmd.Context())
	return reportOutcome(cmd, outcome, err)
}

// reportOutcome prints the result of an acquisition and waits for the
// photo reference to reach storage.
func reportOutcome(cmd *cobra.Command, outcome domain.AcquisitionOutcome, err error) error {
	switch outcome {
	case domain.OutcomeUpdated:
		if err := profileController.Flush(cmd.Context()); err != nil {
			return fmt.Errorf("waiting for save: %w", err)
		}
		if err := profileController.LastPersistError(); err != nil {
			return fmt.Errorf("profile image chosen but not saved: %w", err)
		}
		if state := profileController.State(); state.HasImage() {
			cmd.Printf("Profile image updated: %s\n", state.Image.URI)
		}
	case domain.OutcomeCancelled:
		cmd.Println("Cancelled.")
	case domain.OutcomePermissionRejected:
		cmd.Println("Camera access denied.")
		cmd.Println("Run 'roster permissions grant camera' to allow it.")
	case domain.OutcomeFailed:
		return err
	}
	return nil
}

func runProfileDelete(cmd *cobra.Command, _ []string) error {
	if err := initProfile(cmd); err != nil {
		return err
	}

	if !profileController.State().HasImage() {
		cmd.Println("No profile image set.")
		return nil
	}

	if err := profileController.DeleteImage(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Profile image deleted.")
	return nil
}

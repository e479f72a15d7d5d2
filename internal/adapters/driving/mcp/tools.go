package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// ListContactsInput is the input schema for the list_contacts tool.
type ListContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"only return contacts whose name contains this text (case-insensitive)"`
}

// ListContactsOutput is the output schema for the list_contacts tool.
type ListContactsOutput struct {
	Permission string           `json:"permission"`
	Contacts   []domain.Contact `json:"contacts"`
	Count      int              `json:"count"`
}

// ProfileInput is the empty input schema for the profile tools.
type ProfileInput struct{}

// SetProfileImageInput is the input schema for the set_profile_image tool.
type SetProfileImageInput struct {
	Path string `json:"path" jsonschema:"absolute path of the image file to use"`
}

// ProfileOutput describes the profile photo after a tool call.
type ProfileOutput struct {
	HasImage         bool   `json:"has_image"`
	URI              string `json:"uri,omitempty"`
	CameraPermission string `json:"camera_permission"`
	Outcome          string `json:"outcome,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "list_contacts",
		Description: "List address book contacts with their phone numbers",
	}, s.handleListContacts)

	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "get_profile_image",
		Description: "Show the current profile photo reference",
	}, s.handleGetProfileImage)

	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "delete_profile_image",
		Description: "Remove the profile photo reference",
	}, s.handleDeleteProfileImage)

	if s.ports.SelectFile != nil {
		mcp.AddTool(s.inner, &mcp.Tool{
			Name:        "set_profile_image",
			Description: "Use an image file as the profile photo",
		}, s.handleSetProfileImage)
	}
}

// handleListContacts handles the list_contacts tool invocation.
func (s *Server) handleListContacts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListContactsInput,
) (*mcp.CallToolResult, ListContactsOutput, error) {
	if err := s.ports.Contacts.Initialize(ctx); err != nil {
		return nil, ListContactsOutput{}, fmt.Errorf("loading contacts: %w", err)
	}

	contacts := filterContacts(s.ports.Contacts.Contacts(), input.Query)
	return nil, ListContactsOutput{
		Permission: s.ports.Contacts.Permission().String(),
		Contacts:   contacts,
		Count:      len(contacts),
	}, nil
}

// handleGetProfileImage handles the get_profile_image tool invocation.
func (s *Server) handleGetProfileImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ProfileInput,
) (*mcp.CallToolResult, ProfileOutput, error) {
	if err := s.ports.Profile.Initialize(ctx); err != nil {
		return nil, ProfileOutput{}, fmt.Errorf("loading profile: %w", err)
	}
	return nil, profileOutput(s.ports.Profile.State()), nil
}

// handleDeleteProfileImage handles the delete_profile_image tool invocation.
func (s *Server) handleDeleteProfileImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ProfileInput,
) (*mcp.CallToolResult, ProfileOutput, error) {
	if err := s.ports.Profile.Initialize(ctx); err != nil {
		return nil, ProfileOutput{}, fmt.Errorf("loading profile: %w", err)
	}
	if err := s.ports.Profile.DeleteImage(ctx); err != nil {
		return nil, ProfileOutput{}, err
	}
	return nil, profileOutput(s.ports.Profile.State()), nil
}

// handleSetProfileImage picks path through the library and waits for the
// reference to be stored.
func (s *Server) handleSetProfileImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetProfileImageInput,
) (*mcp.CallToolResult, ProfileOutput, error) {
	if input.Path == "" {
		return nil, ProfileOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}
	if err := s.ports.Profile.Initialize(ctx); err != nil {
		return nil, ProfileOutput{}, fmt.Errorf("loading profile: %w", err)
	}

	s.pickMu.Lock()
	s.ports.SelectFile(input.Path)
	outcome, err := s.ports.Profile.PickFromLibrary(ctx)
	s.pickMu.Unlock()
	if err != nil {
		return nil, ProfileOutput{}, err
	}

	if outcome == domain.OutcomeUpdated {
		if err := s.ports.Profile.Flush(ctx); err != nil {
			return nil, ProfileOutput{}, fmt.Errorf("waiting for save: %w", err)
		}
		if err := s.ports.Profile.LastPersistError(); err != nil {
			return nil, ProfileOutput{}, fmt.Errorf("profile image chosen but not saved: %w", err)
		}
	}

	out := profileOutput(s.ports.Profile.State())
	out.Outcome = outcome.String()
	return nil, out, nil
}

func profileOutput(state domain.ProfileState) ProfileOutput {
	out := ProfileOutput{
		HasImage:         state.HasImage(),
		CameraPermission: state.CameraPermission.String(),
	}
	if out.HasImage {
		out.URI = state.Image.URI
	}
	return out
}

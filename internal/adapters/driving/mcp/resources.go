package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/roster/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for roster resources.
	uriScheme = "roster://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.inner.AddResource(&mcp.Resource{
		URI:         uriScheme + "contacts",
		Name:        "contacts",
		Description: "Address book contacts with phone numbers",
		MIMEType:    "application/json",
	}, s.handleContactsResource)

	s.inner.AddResource(&mcp.Resource{
		URI:         uriScheme + "profile",
		Name:        "profile",
		Description: "Current profile photo reference",
		MIMEType:    "application/json",
	}, s.handleProfileResource)
}

// handleContactsResource returns every contact. A denied permission yields
// an empty list.
func (s *Server) handleContactsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if err := s.ports.Contacts.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("loading contacts: %w", err)
	}

	contacts := s.ports.Contacts.Contacts()
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	return jsonResource(req.Params.URI, contacts)
}

// handleProfileResource returns the profile photo reference.
func (s *Server) handleProfileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if err := s.ports.Profile.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return jsonResource(req.Params.URI, profileOutput(s.ports.Profile.State()))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// filterContacts keeps contacts whose name contains query, ignoring case.
func filterContacts(contacts []domain.Contact, query string) []domain.Contact {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		if contacts == nil {
			return []domain.Contact{}
		}
		return contacts
	}

	matched := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), query) {
			matched = append(matched, c)
		}
	}
	return matched
}

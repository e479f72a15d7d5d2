// Package mcp provides an MCP (Model Context Protocol) server adapter for roster.
// It lets assistants read the address book and manage the profile photo.
package mcp

import "errors"

// ErrMissingContactReader is returned when the contact reader is not provided.
var ErrMissingContactReader = errors.New("mcp: contact reader is required")

// ErrMissingProfileController is returned when the profile controller is not provided.
var ErrMissingProfileController = errors.New("mcp: profile controller is required")

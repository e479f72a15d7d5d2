// Package driving lists what the CLI, TUI and MCP server may ask of roster.
// internal/core/services implements it.
package driving

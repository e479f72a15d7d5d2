package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/roster/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose roster to assistants over the Model Context Protocol",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run an MCP server offering contact lookup and the profile photo
tools to an assistant.

The server speaks JSON-RPC on stdin/stdout unless --http gives a listen
address, in which case it serves the streamable HTTP transport.

Nobody can answer a permission prompt over stdio, so an undecided
permission counts as denied there. Decide ahead of time with
'roster permissions grant contacts' and 'roster permissions grant camera'.

Examples:
  roster mcp serve
  roster mcp serve --http 127.0.0.1:8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("http", "", "Serve HTTP on this address instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// mcpPorts wires the configured services into the server. Picks made
// through the select_file tool go to the file chooser when one is set.
func mcpPorts() *mcp.Ports {
	ports := &mcp.Ports{Contacts: contactReader, Profile: profileController}
	if choosers.Set != nil && choosers.File != nil {
		ports.SelectFile = func(path string) { choosers.Set(choosers.File(path)) }
	}
	return ports
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(mcpPorts(), version)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("http")
	if addr == "" {
		return server.Run(cmd.Context())
	}
	cmd.PrintErrln(fmt.Sprintf("MCP server on http://%s", addr))
	return server.RunHTTP(cmd.Context(), addr)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/abl-cortex/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for ABL language intelligence",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered coding
assistants look up definitions, diagnose files and list symbols in the
workspace.

The MCP server:
- Serves the abl_definition, abl_check and abl_symbols tools
- Reloads the schema index when a dump file changes
- Communicates via stdio (standard MCP transport)

Example:
  abl-cortex mcp --workspace /srv/app --grammar abl.so`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	server, err := mcp.NewServer(svc)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

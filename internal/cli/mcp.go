package cli

import (
	"github.com/spf13/cobra"

	"github.com/jacobprice808/json-distiller/distill"
	"github.com/jacobprice808/json-distiller/internal/mcpserver"
)

// NewMCPCommand creates the mcp command, which serves the distiller as an
// MCP tool over stdio. stdout carries the protocol, so all logging goes to
// stderr.
func NewMCPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP stdio server",
		Long: `Serve the distiller as a Model Context Protocol tool over stdio.

Exposes one tool, distill_json_content, taking a JSON string plus optional
strict_typing, repeat_threshold and position_dependent arguments and
returning the distilled document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logLevel, _ := cmd.Flags().GetString("log-level")
			log := distill.NewLogger(distill.ParseLogLevel(logLevel), cmd.ErrOrStderr())
			return mcpserver.Serve(Version, log)
		},
	}
	cmd.Flags().String("log-level", "warn", "log verbosity (error|warn|info|debug)")
	return cmd
}

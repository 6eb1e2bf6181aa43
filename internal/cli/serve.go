package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpadapter "github.com/example/backlog/internal/adapters/mcp"
	"github.com/example/backlog/internal/version"
	"github.com/example/backlog/internal/wire"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long:  "Exposes the backlog operations as MCP tools for agent clients.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := mcpadapter.New(
			wire.ProjectService(),
			wire.TaskService(),
			wire.SummaryService(),
			version.String(),
		)
		if err := mcpadapter.ServeStdio(s); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	},
}

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	return serveCmd
}

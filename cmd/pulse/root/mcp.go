package root

import (
	"context"

	"github.com/spf13/cobra"

	"pulsestudy/internal/mcptools"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve tasks, notes and progress as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol; diagnostics must stay on stderr.
			svc, cleanup, err := openService(context.Background(), cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return mcptools.ServeStdio(svc)
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/spetersoncode/gitscribe/mcp"
	"github.com/spetersoncode/gitscribe/resolve"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve message validation, secret scanning and model listing as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, err := setup(cmd)
			if err != nil {
				return err
			}
			srv := mcp.NewServer(resolve.New(), mcp.WithVersion(version), mcp.WithLogger(log))
			return mcp.ServeStdio(srv)
		},
	}
}

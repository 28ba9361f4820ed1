package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/spetersoncode/gitscribe/resolve"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List known models and whether a credential is configured for them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup(cmd)
			if err != nil {
				return err
			}
			entries := resolve.New().Catalog(cfg.Exclusions(), cfg.PreferRouter)
			fmt.Fprintln(cmd.OutOrStdout(), modelsTable(entries))
			return nil
		},
	}
}

func modelsTable(entries []resolve.Entry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("MODEL", "PROVIDER", "CONTEXT", "$/M IN", "$/M OUT", "ROUTE")

	for _, e := range entries {
		d := e.Detail
		route := "-"
		if e.Available {
			route = string(e.Route.RouteID)
		}
		t.Row(
			d.Name().String(),
			string(d.Provider()),
			strconv.Itoa(d.ContextWindow()),
			fmt.Sprintf("%.2f", d.Pricing().InputPerMillion),
			fmt.Sprintf("%.2f", d.Pricing().OutputPerMillion),
			route,
		)
	}
	return t.String()
}

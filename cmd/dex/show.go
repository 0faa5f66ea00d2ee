package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var radar bool

	cmd := &cobra.Command{
		Use:   "show <name|id>",
		Short: "Show one entry in detail",
		Long:  "Shows types, description, measurements and base stats for one entry.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], radar)
		},
	}

	cmd.Flags().BoolVar(&radar, "radar", false, "Also print radar chart coordinates")

	return cmd
}

func runShow(cmd *cobra.Command, identifier string, radar bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.Catalog.HandleDetail(ctx, identifier)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", identifier, err)
		}
		if !result.Found() {
			return fmt.Errorf("%s not found", identifier)
		}

		renderDetail(os.Stdout, result.Detail, result.IsFavorite)

		if radar {
			fmt.Println()
			renderRadar(os.Stdout, result.Radar)
		}
		return nil
	})
}

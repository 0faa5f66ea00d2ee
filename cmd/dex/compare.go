package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

func newCompareCmd() *cobra.Command {
	var radar bool

	cmd := &cobra.Command{
		Use:   "compare <a> <b> [c]",
		Short: "Compare two or three entries side by side",
		Long:  "Compares base stats, totals, height and weight. The highest value in each stat row is marked with a crown.",
		Args:  cobra.RangeArgs(entities.MinCompare, entities.MaxCompare),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, radar)
		},
	}

	cmd.Flags().BoolVar(&radar, "radar", false, "Also print each entry's radar chart coordinates")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string, radar bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.Compare.HandleCompareIdentifiers(ctx, args)
		if errors.Is(err, entities.ErrInsufficientData) {
			fmt.Println("Unable to load details for at least two of the selected entries.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("comparing: %w", err)
		}

		renderComparison(os.Stdout, result, radar)
		return nil
	})
}

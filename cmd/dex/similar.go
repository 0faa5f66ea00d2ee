package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/dex-core/internal/application/handlers"
	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/services"
)

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Build the stat similarity index",
		Long:  "Fetches every entry in the catalog window and stores its stat vector in Qdrant.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withSimilarHandler(ctx, func(h *handlers.SimilarHandler) error {
				n, err := h.HandleIndex(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Indexed %d entries\n", n)
				return nil
			})
		},
	}
}

func newSimilarCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "similar <name|id>",
		Short: "Find entries with similar stats",
		Long:  "Finds the entries whose base stat shape is closest to the given one. Run `dex index` first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimilar(cmd, args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", services.DefaultSimilarLimit, "Maximum number of results")

	return cmd
}

func runSimilar(cmd *cobra.Command, identifier string, limit int) error {
	ctx := cmd.Context()

	return withSimilarHandler(ctx, func(h *handlers.SimilarHandler) error {
		result, err := h.HandleSimilar(ctx, identifier, limit)
		if err != nil {
			return fmt.Errorf("searching similar: %w", err)
		}
		if result.Detail == nil {
			return fmt.Errorf("%s not found", identifier)
		}

		if len(result.Matches) == 0 {
			fmt.Println("No similar entries found. Has the index been built?")
			return nil
		}

		fmt.Printf("Closest to %s:\n\n", entities.Capitalize(result.Detail.Name))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NO.\tNAME\tTYPES\tSCORE")
		for _, m := range result.Matches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\n",
				entities.FormatNumber(m.Summary.ID),
				entities.Capitalize(m.Summary.Name),
				typeList(m.Summary.Types),
				m.Score,
			)
		}
		w.Flush()

		return nil
	})
}

func typeList(types []string) string {
	if len(types) == 0 {
		return "-"
	}
	return strings.Join(types, ", ")
}

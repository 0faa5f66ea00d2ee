package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/services"
)

// listFlags holds the filter flags shared by list and export.
type listFlags struct {
	search    string
	types     []string
	favorites bool
	sort      string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Filter by name or number substring")
	cmd.Flags().StringSliceVarP(&f.types, "type", "t", nil, "Filter by type (repeatable, matches any; \"all\" clears earlier types)")
	cmd.Flags().BoolVarP(&f.favorites, "favorites", "f", false, "Only show favorites")
	cmd.Flags().StringVar(&f.sort, "sort", string(services.SortByID), "Sort by id or name")
}

// state validates the flags and converts them to a filter state.
func (f *listFlags) state(view entities.ViewMode) (entities.ViewFilterState, error) {
	state := entities.ViewFilterState{
		SearchQuery:   f.search,
		FavoritesOnly: f.favorites,
		ViewMode:      view,
	}
	for _, t := range f.types {
		if t != entities.TypeChipAll && !entities.IsKnownType(t) {
			return state, fmt.Errorf("invalid type %q, valid types: %v", t, entities.AllTypes)
		}
	}
	return state.WithTypeChips(f.types...), nil
}

func newListCmd() *cobra.Command {
	var (
		flags listFlags
		view  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog",
		Long:  "Lists the catalog with optional search, type and favorites filters.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, &flags, view)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&view, "view", string(entities.ViewGrid), "Layout: grid or row")

	return cmd
}

func runList(cmd *cobra.Command, flags *listFlags, view string) error {
	ctx := cmd.Context()

	mode, err := entities.ParseViewMode(view)
	if err != nil {
		return err
	}
	sortKey, err := services.ParseSortKey(flags.sort)
	if err != nil {
		return err
	}
	state, err := flags.state(mode)
	if err != nil {
		return err
	}

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.Catalog.HandleList(ctx, state)
		if err != nil {
			return fmt.Errorf("listing catalog: %w", err)
		}

		if len(result.Items) == 0 {
			fmt.Println("No results found.")
			return nil
		}

		items := services.SortSummaries(result.Items, sortKey)
		favorites := entities.NewFavoriteSet(result.Favorites...)

		if result.ViewMode == entities.ViewRow {
			renderRows(os.Stdout, items, favorites)
		} else {
			renderGrid(os.Stdout, items, favorites)
		}

		fmt.Printf("\nShowing %d of %d\n", len(items), result.Total)
		return nil
	})
}

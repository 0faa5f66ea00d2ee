package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/infrastructure/parsers"
)

func newFavCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favorites",
		Long:  "Toggle or list favorite entries. Favorites persist across runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavList(cmd)
		},
	}

	cmd.AddCommand(newFavToggleCmd())
	cmd.AddCommand(newFavListCmd())
	cmd.AddCommand(newFavImportCmd())

	return cmd
}

func newFavToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return runFavToggle(cmd, id)
		},
	}
}

func newFavListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavList(cmd)
		},
	}
}

func newFavImportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add every entry of an exported file to favorites",
		Long:  "Reads a JSON or CSV file written by `dex export` and adds each id to favorites.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavImport(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "File format (json, csv); detected from the extension when empty")

	return cmd
}

func runFavImport(cmd *cobra.Command, path, format string) error {
	ctx := cmd.Context()

	parser := parsers.ForFile(path)
	if format != "" {
		parser = parsers.ForFormat(format)
	}
	if parser == nil {
		return fmt.Errorf("unsupported import format for %s (valid: json, csv)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	entries, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.Favorites.HandleImport(ctx, parsers.IDs(entries))
		if err != nil {
			return err
		}

		fmt.Printf("Added %d of %d entries, %d favorites total\n", result.Added, len(entries), len(result.Favorites))
		return nil
	})
}

func runFavToggle(cmd *cobra.Command, id int) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.Favorites.HandleToggle(ctx, id)
		if err != nil {
			return fmt.Errorf("toggling favorite: %w", err)
		}

		if result.Favorite {
			fmt.Printf("Added %s to favorites\n", entities.FormatNumber(id))
		} else {
			fmt.Printf("Removed %s from favorites\n", entities.FormatNumber(id))
		}
		return nil
	})
}

func runFavList(cmd *cobra.Command) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.Favorites.HandleList(ctx)
		if err != nil {
			return fmt.Errorf("listing favorites: %w", err)
		}

		if len(result.IDs) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}

		if len(result.Items) == 0 {
			// Catalog unavailable; the ids are still known.
			for _, id := range result.IDs {
				fmt.Println(entities.FormatNumber(id))
			}
			return nil
		}

		renderRows(os.Stdout, result.Items, entities.NewFavoriteSet(result.IDs...))
		return nil
	})
}

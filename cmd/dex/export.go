package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/services"
)

type exportFlags struct {
	listFlags
	format string
	output string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to a file",
		Long:  "Exports the filtered summary list to JSON, CSV, or markdown format.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.format, "format", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, flags *exportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}
	sortKey, err := services.ParseSortKey(flags.sort)
	if err != nil {
		return err
	}
	state, err := flags.state(entities.ViewRow)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.Catalog.HandleList(ctx, state)
		if err != nil {
			return fmt.Errorf("listing catalog: %w", err)
		}
		if len(result.Items) == 0 {
			return fmt.Errorf("nothing to export")
		}

		return writeExport(flags.format, flags.output, services.SortSummaries(result.Items, sortKey))
	})
}

func writeExport(format, output string, items []entities.EntitySummary) (err error) {
	var w io.Writer = os.Stdout

	if output != "" {
		var f *os.File
		f, err = os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	if err := formatSummaries(w, format, items); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if output != "" {
		fmt.Printf("Exported %d entries to %s\n", len(items), output)
	}

	return nil
}

func formatSummaries(w io.Writer, format string, items []entities.EntitySummary) error {
	switch format {
	case "json":
		return formatJSON(w, items)
	case "csv":
		return formatCSV(w, items)
	case "markdown":
		return formatMarkdown(w, items)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatJSON(w io.Writer, items []entities.EntitySummary) error {
	if items == nil {
		items = []entities.EntitySummary{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}

func formatCSV(w io.Writer, items []entities.EntitySummary) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"id", "number", "name", "types"}); err != nil {
		return err
	}

	for _, item := range items {
		row := []string{
			strconv.Itoa(item.ID),
			entities.FormatNumber(item.ID),
			item.Name,
			strings.Join(item.Types, ";"),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, items []entities.EntitySummary) error {
	if _, err := fmt.Fprintf(w, "# Catalog\n\nTotal: %d entries\n\n", len(items)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| No. | Name | Types |\n|-----|------|-------|\n"); err != nil {
		return err
	}

	for _, item := range items {
		if _, err := fmt.Fprintf(w, "| %s | %s | %s |\n",
			entities.FormatNumber(item.ID),
			escapeMarkdown(entities.Capitalize(item.Name)),
			escapeMarkdown(strings.Join(item.Types, ", ")),
		); err != nil {
			return err
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

const crown = "♛"

// typeColors maps each type tag to its badge color.
var typeColors = map[string]lipgloss.Color{
	"normal":   lipgloss.Color("#9CA3AF"),
	"fire":     lipgloss.Color("#F97316"),
	"water":    lipgloss.Color("#3B82F6"),
	"electric": lipgloss.Color("#FACC15"),
	"grass":    lipgloss.Color("#22C55E"),
	"ice":      lipgloss.Color("#67E8F9"),
	"fighting": lipgloss.Color("#B91C1C"),
	"poison":   lipgloss.Color("#A855F7"),
	"ground":   lipgloss.Color("#CA8A04"),
	"flying":   lipgloss.Color("#A5B4FC"),
	"psychic":  lipgloss.Color("#EC4899"),
	"bug":      lipgloss.Color("#84CC16"),
	"rock":     lipgloss.Color("#A16207"),
	"ghost":    lipgloss.Color("#7E22CE"),
	"dragon":   lipgloss.Color("#4F46E5"),
	"dark":     lipgloss.Color("#374151"),
	"steel":    lipgloss.Color("#6B7280"),
	"fairy":    lipgloss.Color("#F9A8D4"),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(cardWidth)
)

// typeBadge renders one type tag in its color. Unknown tags fall back to normal.
func typeBadge(t string) string {
	color, ok := typeColors[t]
	if !ok {
		color = typeColors["normal"]
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(color).
		Padding(0, 1).
		Render(entities.Capitalize(t))
}

func typeBadges(types []string) string {
	badges := make([]string, len(types))
	for i, t := range types {
		badges[i] = typeBadge(t)
	}
	return strings.Join(badges, " ")
}

func favoriteMark(favorite bool) string {
	if favorite {
		return "★"
	}
	return " "
}

// renderGrid lays the summaries out as bordered cards, gridColumns per line.
func renderGrid(w io.Writer, items []entities.EntitySummary, favorites entities.FavoriteSet) {
	for start := 0; start < len(items); start += gridColumns {
		end := min(start+gridColumns, len(items))

		cards := make([]string, 0, end-start)
		for _, item := range items[start:end] {
			header := fmt.Sprintf("%s %s", mutedStyle.Render(entities.FormatNumber(item.ID)), favoriteMark(favorites.Contains(item.ID)))
			body := lipgloss.JoinVertical(lipgloss.Left,
				header,
				titleStyle.Render(entities.Capitalize(item.Name)),
				typeBadges(item.Types),
			)
			cards = append(cards, cardStyle.Render(body))
		}

		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
}

// renderRows prints one summary per line.
func renderRows(w io.Writer, items []entities.EntitySummary, favorites entities.FavoriteSet) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNO.\tNAME\tTYPES")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			favoriteMark(favorites.Contains(item.ID)),
			entities.FormatNumber(item.ID),
			entities.Capitalize(item.Name),
			strings.Join(item.Types, ", "),
		)
	}
	tw.Flush()
}

// statBar renders value as a bar scaled against MaxBaseStat.
func statBar(value int) string {
	filled := value * statBarWidth / entities.MaxBaseStat
	filled = max(0, min(filled, statBarWidth))
	return barStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", statBarWidth-filled))
}

// renderDetail prints one entity with its stat bars and measurements.
func renderDetail(w io.Writer, d *entities.EntityDetail, favorite bool) {
	fmt.Fprintf(w, "%s %s %s\n", mutedStyle.Render(entities.FormatNumber(d.ID)), titleStyle.Render(entities.Capitalize(d.Name)), favoriteMark(favorite))
	fmt.Fprintln(w, typeBadges(d.Types))
	fmt.Fprintln(w)
	fmt.Fprintln(w, d.Description)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Height: %.1f m   Weight: %.1f kg\n", d.HeightMeters(), d.WeightKilograms())
	fmt.Fprintln(w)

	for _, s := range d.Stats {
		fmt.Fprintf(w, "%-8s %3d %s\n", s.Name.Label(), s.BaseStat, statBar(s.BaseStat))
	}
	fmt.Fprintf(w, "%-8s %3d\n", "Total", d.Total())

	if d.ImageURL != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, mutedStyle.Render(d.ImageURL))
	}
}

// renderRadar prints the derived radar coordinates, one axis per line.
func renderRadar(w io.Writer, chart entities.RadarChart) {
	fmt.Fprintln(w, titleStyle.Render("Radar"))

	rings := make([]string, len(chart.Rings))
	for i, r := range chart.Rings {
		rings[i] = fmt.Sprintf("%.0f", r)
	}
	fmt.Fprintf(w, "center (%.0f, %.0f)  rings %s\n", chart.Geometry.Center.X, chart.Geometry.Center.Y, strings.Join(rings, " "))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STAT\tVALUE\tPOINT\tAXIS\tLABEL")
	for _, v := range chart.Vertices {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", v.Label, v.Value, formatPoint(v.Point), formatPoint(v.Axis), formatPoint(v.LabelAnchor))
	}
	tw.Flush()
}

func formatPoint(p entities.Point) string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// renderComparison prints the stat table with a crown on each maximum.
func renderComparison(w io.Writer, result *entities.ComparisonResult, radar bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "STAT")
	for _, e := range result.Entries {
		fmt.Fprintf(tw, "\t%s", strings.ToUpper(e.Detail.Name))
	}
	fmt.Fprintln(tw)

	fmt.Fprint(tw, "Types")
	for _, e := range result.Entries {
		fmt.Fprintf(tw, "\t%s", strings.Join(e.Detail.Types, "/"))
	}
	fmt.Fprintln(tw)

	for _, row := range result.Stats {
		fmt.Fprint(tw, row.Label)
		for _, cell := range row.Cells {
			fmt.Fprintf(tw, "\t%s", compareCell(cell.Value, cell.IsMaximum))
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprint(tw, "Total")
	for _, e := range result.Entries {
		fmt.Fprintf(tw, "\t%s", compareCell(e.Total, e.IsMaximumTotal))
	}
	fmt.Fprintln(tw)

	fmt.Fprint(tw, "Height")
	for _, e := range result.Entries {
		fmt.Fprintf(tw, "\t%.1f m", e.Detail.HeightMeters())
	}
	fmt.Fprintln(tw)

	fmt.Fprint(tw, "Weight")
	for _, e := range result.Entries {
		fmt.Fprintf(tw, "\t%.1f kg", e.Detail.WeightKilograms())
	}
	fmt.Fprintln(tw)
	tw.Flush()

	for _, u := range result.Unresolved {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Could not load %s", u.Name)))
	}

	if !radar {
		return
	}
	for _, e := range result.Entries {
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.ToUpper(e.Detail.Name))
		renderRadar(w, e.Radar)
	}
}

// compareCell formats a value, marking maxima with a crown.
// Kept unstyled since tabwriter counts escape bytes as width.
func compareCell(value int, best bool) string {
	if best {
		return fmt.Sprintf("%d %s", value, crown)
	}
	return fmt.Sprintf("%d", value)
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/services"
)

func detailWith(id int, name string, hp, atk int) *entities.EntityDetail {
	return &entities.EntityDetail{
		ID:    id,
		Name:  name,
		Types: []string{"normal"},
		Stats: []entities.Stat{
			{Name: entities.StatHP, BaseStat: hp},
			{Name: entities.StatAttack, BaseStat: atk},
		},
	}
}

func TestTypeBadge_KnownTypesHaveColors(t *testing.T) {
	for _, typ := range entities.AllTypes {
		_, ok := typeColors[typ]
		assert.True(t, ok, "missing color for %s", typ)
	}
	assert.Len(t, typeColors, len(entities.AllTypes))
}

func TestTypeBadge_UnknownFallsBack(t *testing.T) {
	assert.Contains(t, typeBadge("shadow"), "Shadow")
}

func TestStatBar(t *testing.T) {
	tests := []struct {
		name   string
		value  int
		filled int
	}{
		{name: "zero", value: 0, filled: 0},
		{name: "max", value: entities.MaxBaseStat, filled: statBarWidth},
		{name: "above max clamps", value: 300, filled: statBarWidth},
		{name: "half", value: 128, filled: 128 * statBarWidth / entities.MaxBaseStat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := statBar(tt.value)
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
			assert.Equal(t, statBarWidth-tt.filled, strings.Count(bar, "░"))
		})
	}
}

func TestRenderRows(t *testing.T) {
	items := []entities.EntitySummary{
		{ID: 1, Name: "Bulbasaur", Types: []string{"grass", "poison"}},
		{ID: 25, Name: "Pikachu", Types: []string{"electric"}},
	}

	var buf bytes.Buffer
	renderRows(&buf, items, entities.NewFavoriteSet(25))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "#001")
	assert.Contains(t, lines[1], "grass, poison")
	assert.NotContains(t, lines[1], "★")
	assert.Contains(t, lines[2], "★")
	assert.Contains(t, lines[2], "Pikachu")
}

func TestRenderGrid(t *testing.T) {
	items := make([]entities.EntitySummary, gridColumns+1)
	for i := range items {
		items[i] = entities.EntitySummary{ID: i + 1, Name: "Mon", Types: []string{"water"}}
	}

	var buf bytes.Buffer
	renderGrid(&buf, items, entities.FavoriteSet{})

	out := buf.String()
	assert.Contains(t, out, "#001")
	assert.Contains(t, out, "#005")
	assert.Contains(t, out, "Water")
}

func TestRenderDetail(t *testing.T) {
	d := detailWith(25, "pikachu", 35, 55)
	d.Height = 4
	d.Weight = 60
	d.Description = "Stores electricity."

	var buf bytes.Buffer
	renderDetail(&buf, d, true)

	out := buf.String()
	assert.Contains(t, out, "Pikachu")
	assert.Contains(t, out, "Height: 0.4 m")
	assert.Contains(t, out, "Weight: 6.0 kg")
	assert.Contains(t, out, "Total     90")
	assert.Contains(t, out, "Stores electricity.")
}

func TestRenderRadar(t *testing.T) {
	d := detailWith(1, "a", 255, 0)
	chart := services.RadarChart(d.Stats, entities.DefaultRadarGeometry())

	var buf bytes.Buffer
	renderRadar(&buf, chart)

	out := buf.String()
	assert.Contains(t, out, "center (150, 150)")
	assert.Contains(t, out, "HP")
	assert.Contains(t, out, "(150.0, 60.0)")
}

func TestRenderComparison_CrownsMaxima(t *testing.T) {
	alpha := detailWith(1, "alpha", 50, 80)
	alpha.Height, alpha.Weight = 7, 69
	beta := detailWith(2, "beta", 50, 60)
	beta.Height, beta.Weight = 17, 905
	result := services.BuildComparison([]*entities.EntityDetail{alpha, beta}, entities.DefaultRadarGeometry())
	result.Unresolved = []entities.EntitySummary{{Name: "missingno"}}

	var buf bytes.Buffer
	renderComparison(&buf, result, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], "ALPHA")
	assert.Contains(t, lines[0], "BETA")

	// HP is a tie, so both columns carry a crown.
	assert.Equal(t, 2, strings.Count(lines[2], crown))
	// Attack and total belong to alpha only.
	assert.Equal(t, 1, strings.Count(lines[3], crown))
	assert.Contains(t, lines[3], "80 "+crown)
	assert.Contains(t, lines[4], "130 "+crown)

	require.GreaterOrEqual(t, len(lines), 7)
	assert.True(t, strings.HasPrefix(lines[5], "Height"))
	assert.Contains(t, lines[5], "0.7 m")
	assert.Contains(t, lines[5], "1.7 m")
	assert.True(t, strings.HasPrefix(lines[6], "Weight"))
	assert.Contains(t, lines[6], "6.9 kg")
	assert.Contains(t, lines[6], "90.5 kg")

	assert.Contains(t, buf.String(), "Could not load missingno")
	assert.NotContains(t, buf.String(), "Radar")
}

func TestRenderComparison_Radar(t *testing.T) {
	result := services.BuildComparison([]*entities.EntityDetail{
		detailWith(1, "alpha", 255, 80),
		detailWith(2, "beta", 50, 60),
	}, entities.DefaultRadarGeometry())

	var buf bytes.Buffer
	renderComparison(&buf, result, true)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "Radar"))
	assert.Equal(t, 2, strings.Count(out, "center (150, 150)"))
	assert.Less(t, strings.Index(out, "\nALPHA\n"), strings.Index(out, "\nBETA\n"))
	assert.Contains(t, out, "(150.0, 60.0)", "alpha's full HP reaches the outer radius")
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = newLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = newLogger("loud", false)
	assert.Error(t, err)
}

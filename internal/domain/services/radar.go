package services

import (
	"math"

	"github.com/ersonp/dex-core/internal/domain/entities"
)

// RadarChart lays out stats on equally spaced axes starting at the top and
// going clockwise. Axis i sits at angle i*2π/N - π/2, and its point lies at
// (value/MaxValue)*InnerRadius from the center.
func RadarChart(stats []entities.Stat, g entities.RadarGeometry) entities.RadarChart {
	chart := entities.RadarChart{
		Geometry: g,
		Vertices: make([]entities.RadarVertex, len(stats)),
		Rings:    make([]float64, 0, g.Levels),
	}

	for level := 1; level <= g.Levels; level++ {
		chart.Rings = append(chart.Rings, g.InnerRadius*float64(level)/float64(g.Levels))
	}

	n := len(stats)
	if n == 0 {
		return chart
	}

	for i, stat := range stats {
		angle := float64(i)*(2*math.Pi/float64(n)) - math.Pi/2
		radius := 0.0
		if g.MaxValue > 0 {
			radius = float64(stat.BaseStat) / g.MaxValue * g.InnerRadius
		}
		chart.Vertices[i] = entities.RadarVertex{
			Stat:        stat.Name,
			Label:       stat.Name.ShortLabel(),
			Value:       stat.BaseStat,
			Point:       polar(g.Center, radius, angle),
			Axis:        polar(g.Center, g.InnerRadius, angle),
			LabelAnchor: polar(g.Center, g.InnerRadius+g.LabelOffset, angle),
		}
	}
	return chart
}

func polar(center entities.Point, radius, angle float64) entities.Point {
	return entities.Point{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

package entities

// Point is a 2D coordinate in chart space (y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RadarGeometry fixes the layout of a radar chart.
type RadarGeometry struct {
	Size        float64 `json:"size"`
	Center      Point   `json:"center"`
	InnerRadius float64 `json:"inner_radius"`
	LabelOffset float64 `json:"label_offset"`
	MaxValue    float64 `json:"max_value"`
	Levels      int     `json:"levels"`
}

// DefaultRadarGeometry returns the 300px layout: center 150, inner radius
// center-60, labels 40 beyond the inner radius, five rings.
func DefaultRadarGeometry() RadarGeometry {
	const size = 300
	center := float64(size) / 2
	return RadarGeometry{
		Size:        size,
		Center:      Point{X: center, Y: center},
		InnerRadius: center - 60,
		LabelOffset: 40,
		MaxValue:    MaxBaseStat,
		Levels:      5,
	}
}

// RadarVertex is one stat axis of a radar chart.
type RadarVertex struct {
	Stat        StatName `json:"stat"`
	Label       string   `json:"label"`
	Value       int      `json:"value"`
	Point       Point    `json:"point"`        // data point at the stat value
	Axis        Point    `json:"axis"`         // axis end at MaxValue
	LabelAnchor Point    `json:"label_anchor"` // label position
}

// RadarChart holds the derived coordinates for one entity's stats.
type RadarChart struct {
	Geometry RadarGeometry `json:"geometry"`
	Vertices []RadarVertex `json:"vertices"`
	Rings    []float64     `json:"rings"` // background ring radii, innermost first
}

// Polygon returns the data points in vertex order.
func (c RadarChart) Polygon() []Point {
	pts := make([]Point, len(c.Vertices))
	for i, v := range c.Vertices {
		pts[i] = v.Point
	}
	return pts
}

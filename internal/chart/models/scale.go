package models

import "math"

// ============================================================
// Cartesian Plan & scales
// ============================================================

// CartesianPlan геометрия bar/line/scatter графиков.
type CartesianPlan struct {
	Type       ChartType `json:"type"`
	Label      string    `json:"label"`
	Color      string    `json:"color"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Padding    float64   `json:"padding"`
	Categories []string  `json:"categories"`
	YMax       float64   `json:"yMax"`
	BandWidth  float64   `json:"bandWidth"`

	Axes  []Segment `json:"axes"`
	Grid  []Segment `json:"grid"`
	Ticks []Tick    `json:"ticks"`

	Bars     []Bar    `json:"bars,omitempty"`
	Points   []Point  `json:"points,omitempty"`
	Polyline string   `json:"polyline,omitempty"`
	Markers  []Marker `json:"markers,omitempty"`

	index map[string]int
}

// NewCartesianPlan строит оси по уникальным категориям X (в порядке
// первого появления) и максимуму Y.
func NewCartesianPlan(t ChartType, width, height, padding float64, categories []any, yMax float64) *CartesianPlan {
	yMax = math.Max(1, yMax)

	p := &CartesianPlan{
		Type:       t,
		Color:      DefaultColor,
		Width:      width,
		Height:     height,
		Padding:    padding,
		Categories: make([]string, 0, len(categories)),
		YMax:       yMax,
		index:      make(map[string]int, len(categories)),
	}

	for _, c := range categories {
		key := CategoryKey(c)
		if _, ok := p.index[key]; ok {
			continue
		}
		p.index[key] = len(p.Categories)
		p.Categories = append(p.Categories, Stringify(c))
	}

	p.BandWidth = (width - padding*2) / float64(max(1, len(p.Categories)))
	return p
}

// XScale переводит категорию в пиксельную координату X.
// Для bar позиция смещена на середину полосы.
func (p *CartesianPlan) XScale(v any) (float64, bool) {
	idx, ok := p.index[CategoryKey(v)]
	if !ok {
		return 0, false
	}

	x := p.Padding + float64(idx)*p.BandWidth
	if p.Type == TypeBar {
		x += p.BandWidth / 2
	}
	return x, true
}

// YScale переводит значение в пиксельную координату Y, предварительно
// прижимая его к [0, YMax]. Большие значения дают меньший Y.
func (p *CartesianPlan) YScale(y float64) float64 {
	if math.IsNaN(y) || y < 0 {
		y = 0
	}
	if y > p.YMax {
		y = p.YMax
	}
	return p.Height - p.Padding - (y/p.YMax)*(p.Height-p.Padding*2)
}

// Baseline координата Y нулевого значения.
func (p *CartesianPlan) Baseline() float64 {
	return p.Height - p.Padding
}

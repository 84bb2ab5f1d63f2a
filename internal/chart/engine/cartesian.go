package engine

import (
	"math"
	"strings"

	"chartboard/internal/chart/models"
)

// ============================================================
// Cartesian charts (bar / line / scatter)
// ============================================================

const (
	barWidthRatio = 0.6
	barRadius     = 4.0
	lineMarkerR   = 3.0
	scatterR      = 4.0
	tickOffset    = 16.0
)

var gridSteps = []float64{0, 0.25, 0.5, 0.75, 1}

func compileCartesian(spec *models.ChartSpec) *models.CartesianPlan {
	xs := make([]any, len(spec.Data))
	ys := make([]float64, len(spec.Data))
	yMax := 1.0
	for i, row := range spec.Data {
		xs[i] = row.Value(spec.XKey)
		ys[i] = field(row, spec.YKey)
		yMax = math.Max(yMax, ys[i])
	}

	plan := models.NewCartesianPlan(spec.Type, Width, Height, Padding, xs, yMax)
	plan.Label = accessibleLabel(spec, string(spec.Type)+" chart")
	if spec.Color != "" {
		plan.Color = spec.Color
	}

	plan.Axes = axes()
	plan.Grid = grid()
	plan.Ticks = ticks(plan)

	switch spec.Type {
	case models.TypeBar:
		plan.Bars = bars(plan, xs, ys)
	case models.TypeLine:
		plan.Points = points(plan, xs, ys)
		plan.Polyline = polyline(plan.Points)
		plan.Markers = markers(plan, xs, ys, lineMarkerR)
	case models.TypeScatter:
		plan.Markers = markers(plan, xs, ys, scatterR)
	}

	return plan
}

// ============================================================
// Axes & grid
// ============================================================

func axes() []models.Segment {
	return []models.Segment{
		{X1: Padding, Y1: Height - Padding, X2: Width - Padding, Y2: Height - Padding},
		{X1: Padding, Y1: Padding, X2: Padding, Y2: Height - Padding},
	}
}

func grid() []models.Segment {
	out := make([]models.Segment, 0, len(gridSteps))
	for _, step := range gridSteps {
		y := Padding + (1-step)*(Height-Padding*2)
		out = append(out, models.Segment{X1: Padding, Y1: y, X2: Width - Padding, Y2: y})
	}
	return out
}

func ticks(plan *models.CartesianPlan) []models.Tick {
	out := make([]models.Tick, 0, len(plan.Categories))
	for i, label := range plan.Categories {
		x := Padding + float64(i)*plan.BandWidth
		if plan.Type == models.TypeBar {
			x += plan.BandWidth / 2
		}
		out = append(out, models.Tick{Label: label, X: x, Y: Height - Padding + tickOffset})
	}
	return out
}

// ============================================================
// Primitives
// ============================================================

func bars(plan *models.CartesianPlan, xs []any, ys []float64) []models.Bar {
	width := plan.BandWidth * barWidthRatio
	out := make([]models.Bar, 0, len(xs))

	for i := range xs {
		cx, _ := plan.XScale(xs[i])
		y := plan.YScale(ys[i])
		out = append(out, models.Bar{
			X:        cx - width/2,
			Y:        y,
			Width:    width,
			Height:   plan.Baseline() - y,
			Radius:   barRadius,
			Category: models.Stringify(xs[i]),
			Value:    ys[i],
		})
	}
	return out
}

func points(plan *models.CartesianPlan, xs []any, ys []float64) []models.Point {
	out := make([]models.Point, 0, len(xs))
	for i := range xs {
		x, _ := plan.XScale(xs[i])
		out = append(out, models.Point{X: x, Y: plan.YScale(ys[i])})
	}
	return out
}

func polyline(pts []models.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = formatFloat(p.X) + "," + formatFloat(p.Y)
	}
	return strings.Join(parts, " ")
}

func markers(plan *models.CartesianPlan, xs []any, ys []float64, r float64) []models.Marker {
	out := make([]models.Marker, 0, len(xs))
	for i := range xs {
		x, _ := plan.XScale(xs[i])
		out = append(out, models.Marker{
			X:        x,
			Y:        plan.YScale(ys[i]),
			R:        r,
			Category: models.Stringify(xs[i]),
			Value:    ys[i],
		})
	}
	return out
}

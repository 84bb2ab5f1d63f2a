package engine

import (
	"fmt"
	"math"
	"strings"

	"chartboard/internal/chart/models"
)

// ============================================================
// Pie chart
// ============================================================

// Palette цвета секторов, перебираются по индексу.
var Palette = []string{"#3b82f6", "#22c55e", "#f59e0b", "#ef4444", "#8b5cf6", "#06b6d4", "#a3e635"}

const (
	pieInset       = 10.0
	pieLabelRadius = 0.6
	// первый сектор начинается сверху (12 часов) и идёт по часовой
	pieRotation = -math.Pi / 2
	fullTurn    = 2 * math.Pi
	// сектор шире этого рисуется двумя полудугами
	fullTurnEpsilon = 1e-9
)

func compilePie(spec *models.ChartSpec) *models.PiePlan {
	values := make([]float64, len(spec.Data))
	total, largest := 0.0, 0.0
	for i, row := range spec.Data {
		values[i] = math.Max(0, field(row, spec.ValueKey))
		total += values[i]
		largest = math.Max(largest, values[i])
	}
	if total == 0 {
		total = 1
	}

	// доли считаем от total; если сумма ушла в +Inf, то от значений,
	// поделённых на наибольшее
	scale, shareTotal := 1.0, total
	if math.IsInf(total, 1) {
		scale, shareTotal = largest, 0
		for _, val := range values {
			shareTotal += val / largest
		}
		total = math.MaxFloat64
	}

	plan := &models.PiePlan{
		Label:    accessibleLabel(spec, "Pie chart"),
		Width:    Width,
		Height:   Height,
		Total:    total,
		Center:   models.Point{X: Width / 2, Y: Height / 2},
		Radius:   math.Min(Width, Height)/2 - pieInset,
		Rotation: pieRotation,
		Slices:   make([]models.Slice, 0, len(values)),
	}

	withLabels := len(spec.Labels) == len(spec.Data)

	angle := 0.0
	for i, val := range values {
		span := val / scale / shareTotal * fullTurn
		end := angle + span
		if i == len(values)-1 && val > 0 && math.Abs(end-fullTurn) < 1e-6 {
			// гасим накопленную погрешность, круг замыкается точно
			end = fullTurn
			span = end - angle
		}

		slice := models.Slice{
			Index:      i,
			Value:      val,
			StartAngle: angle,
			EndAngle:   end,
			LargeArc:   span > math.Pi,
			Path:       slicePath(plan, angle, end),
			Fill:       Palette[i%len(Palette)],
		}
		if withLabels {
			mid := (angle + end) / 2
			p := polar(plan.Center, plan.Radius*pieLabelRadius, mid)
			slice.Label = &models.SliceLabel{Text: spec.Labels[i], X: p.X, Y: p.Y}
		}

		plan.Slices = append(plan.Slices, slice)
		angle = end
	}

	return plan
}

// polar точка на окружности для угла развёртки.
func polar(center models.Point, r, angle float64) models.Point {
	a := angle + pieRotation
	return models.Point{
		X: center.X + r*math.Cos(a),
		Y: center.Y + r*math.Sin(a),
	}
}

func slicePath(plan *models.PiePlan, start, end float64) string {
	c, r := plan.Center, plan.Radius
	p1 := polar(c, r, start)

	var path strings.Builder
	fmt.Fprintf(&path, "M %s %s L %s %s", formatFloat(c.X), formatFloat(c.Y), formatFloat(p1.X), formatFloat(p1.Y))

	if end-start >= fullTurn-fullTurnEpsilon {
		mid := polar(c, r, start+math.Pi)
		fmt.Fprintf(&path, " A %s %s 0 0 1 %s %s", formatFloat(r), formatFloat(r), formatFloat(mid.X), formatFloat(mid.Y))
		fmt.Fprintf(&path, " A %s %s 0 0 1 %s %s Z", formatFloat(r), formatFloat(r), formatFloat(p1.X), formatFloat(p1.Y))
		return path.String()
	}

	large := 0
	if end-start > math.Pi {
		large = 1
	}
	p2 := polar(c, r, end)
	fmt.Fprintf(&path, " A %s %s 0 %d 1 %s %s Z", formatFloat(r), formatFloat(r), large, formatFloat(p2.X), formatFloat(p2.Y))
	return path.String()
}

package render

import (
	"fmt"
	"html"
	"strings"

	"chartboard/internal/chart/models"
)

// ============================================================
// SVG Renderer
// ============================================================

const (
	axisStroke = "#e5e7eb"
	gridStroke = "#f3f4f6"
	textFill   = "#6b7280"

	tableRowHeight = 24.0
	tableWidth     = 520.0
	placeholderW   = 520.0
	placeholderH   = 60.0
)

type SVGRenderer struct{}

func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{}
}

// Render собирает SVG-документ из плана отрисовки.
func (r *SVGRenderer) Render(plan models.RenderPlan) (string, error) {
	if plan == nil {
		return "", fmt.Errorf("plan is nil")
	}

	var (
		width, height float64
		label         string
		elements      []string
	)

	switch p := plan.(type) {
	case *models.CartesianPlan:
		width, height, label = p.Width, p.Height, p.Label
		elements = r.renderCartesian(p)
	case *models.PiePlan:
		width, height, label = p.Width, p.Height, p.Label
		elements = r.renderPie(p)
	case *models.TablePlan:
		width = tableWidth
		height = tableRowHeight * float64(len(p.Rows)+1)
		label = p.Title
		if label == "" {
			label = "Table"
		}
		elements = r.renderTable(p)
	case *models.EmptyPlan:
		width, height, label = placeholderW, placeholderH, "No data"
		elements = placeholder(label)
	case *models.UnsupportedPlan:
		width, height, label = placeholderW, placeholderH, "Unsupported chart type"
		elements = placeholder(label)
	default:
		return "", fmt.Errorf("unknown plan %T", plan)
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" role="img" aria-label="%s" width="%s" height="%s" viewBox="0 0 %s %s">`,
		html.EscapeString(label), formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Element renderers
// ============================================================

func (r *SVGRenderer) renderCartesian(p *models.CartesianPlan) []string {
	var out []string

	for _, a := range p.Axes {
		out = append(out, line(a, axisStroke))
	}
	for _, t := range p.Ticks {
		out = append(out, fmt.Sprintf(`<text x="%s" y="%s" fill="%s" font-size="12" text-anchor="middle">%s</text>`,
			formatFloat(t.X), formatFloat(t.Y), textFill, html.EscapeString(t.Label)))
	}
	for _, g := range p.Grid {
		out = append(out, line(g, gridStroke))
	}

	// цвет приходит из спеки как есть
	color := html.EscapeString(p.Color)
	for _, b := range p.Bars {
		out = append(out, fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" />`,
			formatFloat(b.X), formatFloat(b.Y), formatFloat(b.Width), formatFloat(b.Height), formatFloat(b.Radius), color))
	}

	if p.Polyline != "" {
		out = append(out, fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="2" points="%s" />`, color, p.Polyline))
	}

	for _, m := range p.Markers {
		out = append(out, fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s" />`,
			formatFloat(m.X), formatFloat(m.Y), formatFloat(m.R), color))
	}

	return out
}

func (r *SVGRenderer) renderPie(p *models.PiePlan) []string {
	var out []string

	for _, s := range p.Slices {
		out = append(out, fmt.Sprintf(`<path d="%s" fill="%s" />`, s.Path, html.EscapeString(s.Fill)))
	}
	for _, s := range p.Slices {
		if s.Label == nil {
			continue
		}
		out = append(out, fmt.Sprintf(`<text x="%s" y="%s" fill="#fff" font-size="12" font-weight="600" text-anchor="middle">%s</text>`,
			formatFloat(s.Label.X), formatFloat(s.Label.Y), html.EscapeString(s.Label.Text)))
	}

	return out
}

func (r *SVGRenderer) renderTable(p *models.TablePlan) []string {
	var out []string
	if len(p.Columns) == 0 {
		return out
	}

	colWidth := tableWidth / float64(len(p.Columns))
	cell := func(col, row int, text string, weight string) string {
		x := float64(col)*colWidth + 8
		y := float64(row)*tableRowHeight + 16
		return fmt.Sprintf(`<text x="%s" y="%s" font-size="12" font-weight="%s">%s</text>`,
			formatFloat(x), formatFloat(y), weight, html.EscapeString(text))
	}

	for i, col := range p.Columns {
		out = append(out, cell(i, 0, col, "600"))
	}
	for j, row := range p.Rows {
		y := float64(j+1) * tableRowHeight
		out = append(out, line(models.Segment{X1: 0, Y1: y, X2: tableWidth, Y2: y}, axisStroke))
		for i, text := range row {
			out = append(out, cell(i, j+1, text, "400"))
		}
	}

	return out
}

func placeholder(text string) []string {
	return []string{
		fmt.Sprintf(`<text x="%s" y="%s" fill="%s" font-size="14" text-anchor="middle">%s</text>`,
			formatFloat(placeholderW/2), formatFloat(placeholderH/2), textFill, html.EscapeString(text)),
	}
}

// ============================================================
// Formatting helpers
// ============================================================

func line(s models.Segment, stroke string) string {
	return fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" />`,
		formatFloat(s.X1), formatFloat(s.Y1), formatFloat(s.X2), formatFloat(s.Y2), stroke)
}

func formatFloat(val float64) string {
	return models.FormatCoord(val)
}

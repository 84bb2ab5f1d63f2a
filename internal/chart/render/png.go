package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"chartboard/internal/chart/models"

	"github.com/gogpu/gg"
)

// ============================================================
// PNG Renderer
// ============================================================

// ErrNotRasterizable план без геометрии (таблица, заглушки).
var ErrNotRasterizable = errors.New("plan has no raster geometry")

// PNG растеризует план программным рендерером gg. Подписи не рисуются,
// они остаются в SVG.
func PNG(w io.Writer, plan models.RenderPlan) error {
	var dc *gg.Context

	switch p := plan.(type) {
	case *models.CartesianPlan:
		dc = gg.NewContext(int(p.Width), int(p.Height))
		defer dc.Close()
		dc.ClearWithColor(gg.White)
		if err := drawCartesian(dc, p); err != nil {
			return err
		}
	case *models.PiePlan:
		dc = gg.NewContext(int(p.Width), int(p.Height))
		defer dc.Close()
		dc.ClearWithColor(gg.White)
		if err := drawPie(dc, p); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrNotRasterizable, kindOf(plan))
	}

	return dc.EncodePNG(w)
}

func drawCartesian(dc *gg.Context, p *models.CartesianPlan) error {
	dc.SetLineWidth(1)
	dc.SetHexColor(gridStroke)
	for _, g := range p.Grid {
		dc.DrawLine(g.X1, g.Y1, g.X2, g.Y2)
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke grid: %w", err)
	}

	dc.SetHexColor(axisStroke)
	for _, a := range p.Axes {
		dc.DrawLine(a.X1, a.Y1, a.X2, a.Y2)
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke axes: %w", err)
	}

	dc.SetHexColor(p.Color)
	for _, b := range p.Bars {
		if b.Height <= 0 {
			continue
		}
		dc.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, b.Radius)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill bar: %w", err)
		}
	}

	if len(p.Points) > 1 {
		dc.SetLineWidth(2)
		dc.MoveTo(p.Points[0].X, p.Points[0].Y)
		for _, pt := range p.Points[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke line: %w", err)
		}
	}

	for _, m := range p.Markers {
		dc.DrawCircle(m.X, m.Y, m.R)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill marker: %w", err)
		}
	}
	return nil
}

func drawPie(dc *gg.Context, p *models.PiePlan) error {
	for _, s := range p.Slices {
		if s.Angle() <= 0 {
			continue
		}

		dc.SetHexColor(s.Fill)
		if s.Angle() >= 2*math.Pi-1e-9 {
			dc.DrawCircle(p.Center.X, p.Center.Y, p.Radius)
		} else {
			start := s.StartAngle + p.Rotation
			end := s.EndAngle + p.Rotation
			dc.MoveTo(p.Center.X, p.Center.Y)
			dc.LineTo(p.Center.X+p.Radius*math.Cos(start), p.Center.Y+p.Radius*math.Sin(start))
			dc.DrawArc(p.Center.X, p.Center.Y, p.Radius, start, end)
			dc.ClosePath()
		}
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill slice %d: %w", s.Index, err)
		}
	}
	return nil
}

func kindOf(plan models.RenderPlan) string {
	if plan == nil {
		return "nil"
	}
	return string(plan.Kind())
}

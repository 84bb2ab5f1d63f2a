package render

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"chartboard/internal/chart/engine"
	"chartboard/internal/chart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func compile(t *testing.T, raw string) models.RenderPlan {
	t.Helper()
	var spec models.ChartSpec
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))
	plan, err := engine.Compile(&spec)
	require.NoError(t, err)
	return plan
}

const (
	barSpec   = `{"type":"bar","title":"Sales & Co","data":[{"cat":"A","val":3},{"cat":"B","val":1}],"xKey":"cat","yKey":"val","color":"#ff0000"}`
	lineSpec  = `{"type":"line","data":[{"m":"Jan","v":1},{"m":"Feb","v":4},{"m":"Mar","v":2}],"xKey":"m","yKey":"v"}`
	pieSpec   = `{"type":"pie","data":[{"l":"X","v":1},{"l":"Y","v":3}],"valueKey":"v","labels":["X","Y"]}`
	tableSpec = `{"type":"table","data":[{"name":"<b>","n":1},{"name":"c"}]}`
)

func TestSVG_Cartesian(t *testing.T) {
	svg, err := NewSVGRenderer().Render(compile(t, barSpec))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, svg, `aria-label="Sales &amp; Co"`)
	assert.Contains(t, svg, `width="520" height="260"`)
	assert.Equal(t, 2, strings.Count(svg, "<rect "))
	assert.Contains(t, svg, `fill="#ff0000"`)
	// 2 оси + 5 линий сетки
	assert.Equal(t, 7, strings.Count(svg, "<line "))
	assert.Contains(t, svg, `>A</text>`)
	assert.NotContains(t, svg, "<polyline")
}

func TestSVG_Line(t *testing.T) {
	svg, err := NewSVGRenderer().Render(compile(t, lineSpec))
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(svg, "<polyline "))
	assert.Equal(t, 3, strings.Count(svg, "<circle "))
	assert.Contains(t, svg, `aria-label="line chart"`)
}

func TestSVG_ColorIsEscaped(t *testing.T) {
	for _, typ := range []string{"bar", "line"} {
		t.Run(typ, func(t *testing.T) {
			raw := `{"type":"` + typ + `","data":[{"x":"A","y":2}],"xKey":"x","yKey":"y","color":"red\" onload=\"alert(1)"}`
			svg, err := NewSVGRenderer().Render(compile(t, raw))
			require.NoError(t, err)

			assert.NotContains(t, svg, `onload="alert(1)"`)
			assert.Contains(t, svg, `"red&#34; onload=&#34;alert(1)"`)
		})
	}
}

func TestSVG_Pie(t *testing.T) {
	plan := compile(t, pieSpec).(*models.PiePlan)
	svg, err := NewSVGRenderer().Render(plan)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(svg, "<path "))
	assert.Contains(t, svg, plan.Slices[1].Path)
	assert.Contains(t, svg, `>Y</text>`)
}

func TestSVG_TableAndPlaceholders(t *testing.T) {
	svg, err := NewSVGRenderer().Render(compile(t, tableSpec))
	require.NoError(t, err)
	assert.Contains(t, svg, "&lt;b&gt;")
	assert.Contains(t, svg, ">undefined</text>")
	assert.Contains(t, svg, `height="72"`)

	empty, err := NewSVGRenderer().Render(compile(t, `{"type":"table","data":[]}`))
	require.NoError(t, err)
	assert.Contains(t, empty, ">No data</text>")

	unsupported, err := NewSVGRenderer().Render(compile(t, `{"type":"wiggle"}`))
	require.NoError(t, err)
	assert.Contains(t, unsupported, ">Unsupported chart type</text>")

	_, err = NewSVGRenderer().Render(nil)
	assert.Error(t, err)
}

func TestPNG_Bar(t *testing.T) {
	plan := compile(t, barSpec).(*models.CartesianPlan)

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, plan))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 520, img.Bounds().Dx())
	assert.Equal(t, 260, img.Bounds().Dy())

	bar := plan.Bars[0]
	r, g, b, _ := img.At(int(bar.X+bar.Width/2), int(bar.Y+bar.Height/2)).RGBA()
	assert.Greater(t, r, uint32(0xf000), "bar interior is red")
	assert.Less(t, g, uint32(0x1000))
	assert.Less(t, b, uint32(0x1000))

	r, g, b, _ = img.At(5, 5).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b}, "background is white")
}

func TestPNG_Pie(t *testing.T) {
	plan := compile(t, pieSpec).(*models.PiePlan)

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, plan))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	// второй сектор (3/4) закрывает левую половину круга
	r, g, b, _ := img.At(int(plan.Center.X-plan.Radius/2), int(plan.Center.Y)).RGBA()
	assert.NotEqual(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}

func TestPNG_NotRasterizable(t *testing.T) {
	for _, raw := range []string{tableSpec, `{"type":"table","data":[]}`, `{"type":"wiggle"}`} {
		err := PNG(&bytes.Buffer{}, compile(t, raw))
		assert.ErrorIs(t, err, ErrNotRasterizable, raw)
		assert.True(t, IsUndrawable(err))
	}
}

func TestXLSX(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want [][]string
	}{
		{"table", tableSpec, [][]string{{"name", "n"}, {"<b>", "1"}, {"c", "undefined"}}},
		{"bar", barSpec, [][]string{{"category", "value"}, {"A", "3"}, {"B", "1"}}},
		{"pie", pieSpec, [][]string{{"label", "value", "share"}, {"X", "1", "0.25"}, {"Y", "3", "0.75"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, XLSX(&buf, compile(t, tt.spec)))

			f, err := excelize.OpenReader(&buf)
			require.NoError(t, err)
			defer f.Close()

			rows, err := f.GetRows(sheetName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}

	err := XLSX(&bytes.Buffer{}, compile(t, `{"type":"wiggle"}`))
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestEncode(t *testing.T) {
	plan := compile(t, lineSpec)

	for _, name := range []string{"", "SVG", "png", "xlsx"} {
		f, err := ParseFormat(name)
		require.NoError(t, err, name)

		data, err := Encode(plan, f)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data)
	}

	_, err := ParseFormat("gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, "image/png", FormatPNG.ContentType())
	assert.Equal(t, "image/svg+xml", FormatSVG.ContentType())
}

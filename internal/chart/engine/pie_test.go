package engine

import (
	"math"
	"strings"
	"testing"

	"chartboard/internal/chart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumAngles(plan *models.PiePlan) float64 {
	sum := 0.0
	for _, s := range plan.Slices {
		sum += s.Angle()
	}
	return sum
}

func assertFinitePath(t *testing.T, path string) {
	t.Helper()
	assert.NotContains(t, path, "NaN")
	assert.NotContains(t, path, "Inf")
}

func TestPie_AnglesCloseCircle(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"single", `[{"v":5}]`},
		{"two", `[{"v":1},{"v":3}]`},
		{"many", `[{"v":1},{"v":2},{"v":3},{"v":4},{"v":5},{"v":6},{"v":7},{"v":8},{"v":9}]`},
		{"thirds", `[{"v":1},{"v":1},{"v":1}]`},
		{"mixed junk", `[{"v":"2"},{"v":"abc"},{"v":-4},{"v":0.5},{}]`},
		{"trailing zero", `[{"v":1},{"v":2},{"v":0}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := mustSpec(t, `{"type":"pie","valueKey":"v","data":`+tt.data+`}`)
			plan := mustCompile(t, spec).(*models.PiePlan)

			require.Len(t, plan.Slices, len(spec.Data))
			assert.InDelta(t, 2*math.Pi, sumAngles(plan), 1e-6)

			prev := 0.0
			for i, s := range plan.Slices {
				assert.Equal(t, prev, s.StartAngle, "slice %d starts where previous ended", i)
				assert.GreaterOrEqual(t, s.Angle(), 0.0)
				assert.Equal(t, Palette[i%len(Palette)], s.Fill)
				assertFinitePath(t, s.Path)
				prev = s.EndAngle
			}
		})
	}
}

func TestPie_AllZeroValues(t *testing.T) {
	spec := mustSpec(t, `{"type":"pie","data":[{"label":"X","value":0},{"label":"Y","value":0}],"valueKey":"value"}`)
	plan := mustCompile(t, spec).(*models.PiePlan)

	assert.Equal(t, 1.0, plan.Total)
	require.Len(t, plan.Slices, 2)
	for _, s := range plan.Slices {
		assert.Equal(t, 0.0, s.Angle())
		assert.False(t, s.LargeArc)
		assertFinitePath(t, s.Path)
		assert.Nil(t, s.Label)
	}
}

func TestPie_MissingValues(t *testing.T) {
	plan := mustCompile(t, mustSpec(t, `{"type":"pie","data":[{"a":1},{"b":2}],"valueKey":"value"}`)).(*models.PiePlan)

	for _, s := range plan.Slices {
		assert.Equal(t, 0.0, s.StartAngle)
		assert.Equal(t, 0.0, s.EndAngle)
	}
}

func TestPie_Geometry(t *testing.T) {
	spec := mustSpec(t, `{"type":"pie","data":[{"v":3},{"v":1}],"valueKey":"v"}`)
	plan := mustCompile(t, spec).(*models.PiePlan)

	assert.Equal(t, models.Point{X: 260, Y: 130}, plan.Center)
	assert.Equal(t, 120.0, plan.Radius)
	assert.Equal(t, 4.0, plan.Total)
	assert.Equal(t, "Pie chart", plan.Label)

	big, small := plan.Slices[0], plan.Slices[1]
	assert.InDelta(t, 1.5*math.Pi, big.Angle(), 1e-12)
	assert.True(t, big.LargeArc)
	assert.False(t, small.LargeArc)

	// первый сектор начинается сверху
	assert.True(t, strings.HasPrefix(big.Path, "M 260 130 L 260 10 A 120 120 0 1 1 "), big.Path)
	assert.True(t, strings.HasSuffix(big.Path, " Z"))
	assert.Contains(t, small.Path, " A 120 120 0 0 1 ")
}

func TestPie_FullCircleSlice(t *testing.T) {
	plan := mustCompile(t, mustSpec(t, `{"type":"pie","data":[{"v":0},{"v":9}],"valueKey":"v"}`)).(*models.PiePlan)

	full := plan.Slices[1]
	assert.InDelta(t, 2*math.Pi, full.Angle(), 1e-12)
	assert.True(t, full.LargeArc)
	// полный круг рисуется двумя полудугами
	assert.Equal(t, 2, strings.Count(full.Path, " A "))
	assert.Equal(t, "M 260 130 L 260 10 A 120 120 0 0 1 260 250 A 120 120 0 0 1 260 10 Z", full.Path)
}

func TestPie_Labels(t *testing.T) {
	t.Run("length matched", func(t *testing.T) {
		spec := mustSpec(t, `{"type":"pie","data":[{"v":1},{"v":1}],"valueKey":"v","labels":["left","right"]}`)
		plan := mustCompile(t, spec).(*models.PiePlan)

		require.NotNil(t, plan.Slices[0].Label)
		require.NotNil(t, plan.Slices[1].Label)
		assert.Equal(t, "left", plan.Slices[0].Label.Text)

		// середина первой половины: справа от центра на 0.6 радиуса
		assert.InDelta(t, 260+72, plan.Slices[0].Label.X, 1e-9)
		assert.InDelta(t, 130, plan.Slices[0].Label.Y, 1e-9)
		assert.InDelta(t, 260-72, plan.Slices[1].Label.X, 1e-9)
	})

	t.Run("length mismatch", func(t *testing.T) {
		spec := mustSpec(t, `{"type":"pie","data":[{"v":1},{"v":1}],"valueKey":"v","labels":["only one"]}`)
		plan := mustCompile(t, spec).(*models.PiePlan)

		for _, s := range plan.Slices {
			assert.Nil(t, s.Label)
		}
	})
}

func TestPie_PaletteCycles(t *testing.T) {
	spec := mustSpec(t, `{"type":"pie","valueKey":"v","data":[{"v":1},{"v":1},{"v":1},{"v":1},{"v":1},{"v":1},{"v":1},{"v":1},{"v":1}]}`)
	plan := mustCompile(t, spec).(*models.PiePlan)

	require.GreaterOrEqual(t, len(Palette), 7)
	assert.Equal(t, plan.Slices[0].Fill, plan.Slices[7].Fill)
	assert.Equal(t, plan.Slices[1].Fill, plan.Slices[8].Fill)
}

func TestPie_EmptyData(t *testing.T) {
	plan := mustCompile(t, mustSpec(t, `{"type":"pie","data":[],"valueKey":"v"}`)).(*models.PiePlan)

	assert.Empty(t, plan.Slices)
	assert.Equal(t, 1.0, plan.Total)
}

func TestPie_HugeValuesStillCloseCircle(t *testing.T) {
	spec := mustSpec(t, `{"type":"pie","valueKey":"v","data":[{"v":1e308},{"v":1e308},{"v":5e307}]}`)
	plan := mustCompile(t, spec).(*models.PiePlan)

	require.Len(t, plan.Slices, 3)
	assert.False(t, math.IsInf(plan.Total, 0))
	assert.InDelta(t, 2*math.Pi, sumAngles(plan), 1e-6)
	assert.InDelta(t, plan.Slices[0].Angle(), plan.Slices[1].Angle(), 1e-9)
	assert.InDelta(t, 2*math.Pi*0.4, plan.Slices[0].Angle(), 1e-9)
	for _, s := range plan.Slices {
		assertFinitePath(t, s.Path)
	}
}

package engine

import (
	"encoding/json"
	"math"
	"testing"

	"chartboard/internal/chart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_EmptyData(t *testing.T) {
	plan := mustCompile(t, mustSpec(t, `{"type":"table","data":[]}`))

	require.Equal(t, models.KindEmpty, plan.Kind())
	assert.Equal(t, models.TypeTable, plan.(*models.EmptyPlan).Type)
}

func TestTable_NilDataIsEmpty(t *testing.T) {
	plan := mustCompile(t, &models.ChartSpec{Type: models.TypeTable})
	assert.Equal(t, models.KindEmpty, plan.Kind())
}

func TestTable_ColumnsFromFirstRow(t *testing.T) {
	spec := mustSpec(t, `{"type":"table","title":"People","data":[
		{"name":"Ann","age":31,"admin":true},
		{"age":2.5,"name":null},
		{"name":"Bob","extra":"ignored"}
	]}`)
	plan := mustCompile(t, spec).(*models.TablePlan)

	assert.Equal(t, "People", plan.Title)
	assert.Equal(t, []string{"name", "age", "admin"}, plan.Columns)
	assert.Equal(t, [][]string{
		{"Ann", "31", "true"},
		{"null", "2.5", "undefined"},
		{"Bob", "undefined", "undefined"},
	}, plan.Rows)
}

func TestTable_NestedValues(t *testing.T) {
	spec := mustSpec(t, `{"type":"table","data":[{"obj":{"a":1},"list":[1,"x",null,true]}]}`)
	plan := mustCompile(t, spec).(*models.TablePlan)

	assert.Equal(t, [][]string{{"[object Object]", "1,x,,true"}}, plan.Rows)
}

func TestTable_KeyOrderIsNotAlphabetical(t *testing.T) {
	spec := mustSpec(t, `{"type":"table","data":[{"z":1,"a":2,"m":3}]}`)
	plan := mustCompile(t, spec).(*models.TablePlan)

	assert.Equal(t, []string{"z", "a", "m"}, plan.Columns)
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 2.5, 2.5},
		{"int", 7, 7},
		{"uint8", uint8(9), 9},
		{"negative", -3.0, -3},
		{"numeric string", " 42 ", 42},
		{"float string", "1e3", 1000},
		{"empty string", "", 0},
		{"junk string", "abc", 0},
		{"nan string", "NaN", 0},
		{"inf string", "Infinity", 0},
		{"true", true, 1},
		{"false", false, 0},
		{"nil", nil, 0},
		{"undefined", models.Undefined, 0},
		{"json number", json.Number("12.5"), 12.5},
		{"bad json number", json.Number("x"), 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"object", map[string]any{"a": 1}, 0},
		{"list", []any{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.in))
		})
	}
}

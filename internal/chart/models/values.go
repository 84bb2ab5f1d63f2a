package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ============================================================
// Value formatting
// ============================================================

// Stringify приводит значение ячейки к строке так же, как это делает
// браузер при выводе в таблицу.
func Stringify(v any) string {
	switch val := v.(type) {
	case undefinedValue:
		return "undefined"
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return FormatNumber(f)
		}
		return val.String()
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			if item == nil || item == Undefined {
				continue
			}
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case map[string]any, Row:
		return "[object Object]"
	}

	if f, ok := ToFloat(v); ok {
		return FormatNumber(f)
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return "[object Object]"
}

// FormatNumber печатает число в кратчайшей форме: 3, 2.5, 1e+21.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	// 1e-07 -> 1e-7
	if i := strings.IndexAny(s, "e"); i >= 0 {
		mant, exp := s[:i+2], strings.TrimLeft(s[i+2:], "0")
		s = mant + exp
	}
	return s
}

// FormatCoord печатает координату для SVG без экспоненты, -0 как 0.
func FormatCoord(val float64) string {
	if val == 0 {
		val = 0 // -0
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}

// CategoryKey ключ идентичности категории на оси X.
// Числа сравниваются по значению независимо от Go-типа.
func CategoryKey(v any) string {
	switch val := v.(type) {
	case undefinedValue:
		return "undefined"
	case nil:
		return "null"
	case string:
		return "s:" + val
	case bool:
		return "b:" + strconv.FormatBool(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return "n:" + FormatNumber(f)
		}
		return "s:" + val.String()
	}

	if f, ok := ToFloat(v); ok {
		return "n:" + FormatNumber(f)
	}
	b, _ := json.Marshal(v)
	return "o:" + string(b)
}

// ToFloat возвращает значение числовых Go-типов как float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"chartboard/internal/chart/models"
)

// Coerce приводит значение поля к числу. Всё, что не удаётся
// распознать как конечное число, становится 0, поэтому одна битая
// строка портит только свою геометрию.
func Coerce(v any) float64 {
	var f float64

	switch val := v.(type) {
	case nil:
		return 0
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	default:
		n, ok := models.ToFloat(v)
		if !ok {
			return 0
		}
		f = n
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// field извлекает числовое значение поля строки.
func field(row models.Row, key string) float64 {
	v, ok := row.Get(key)
	if !ok {
		return 0
	}
	return Coerce(v)
}

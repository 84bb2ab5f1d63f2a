package engine

import (
	"errors"

	"chartboard/internal/chart/models"
)

// ============================================================
// Geometry Compiler
// ============================================================

// Размеры холста фиксированы для всех графиков.
const (
	Width   = 520.0
	Height  = 260.0
	Padding = 32.0
)

var (
	// ErrMissingSpec спека не передана.
	ErrMissingSpec = errors.New("chart spec is missing")
	// ErrMissingType в спеке нет поля type.
	ErrMissingType = errors.New("chart spec has no type")
)

// Compile переводит спеку в план отрисовки. Пустые данные и неизвестный
// тип дают отдельные варианты плана, а не ошибку.
func Compile(spec *models.ChartSpec) (models.RenderPlan, error) {
	if spec == nil {
		return nil, ErrMissingSpec
	}

	switch {
	case spec.Type == "":
		return nil, ErrMissingType
	case spec.Type == models.TypeTable:
		return compileTable(spec), nil
	case spec.Type == models.TypePie:
		return compilePie(spec), nil
	case spec.Type.IsCartesian():
		return compileCartesian(spec), nil
	}

	return &models.UnsupportedPlan{Type: spec.Type}, nil
}

// accessibleLabel подпись для aria-label.
func accessibleLabel(spec *models.ChartSpec, fallback string) string {
	if spec.Title != "" {
		return spec.Title
	}
	return fallback
}

func formatFloat(val float64) string {
	return models.FormatCoord(val)
}

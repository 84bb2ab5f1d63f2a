package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"chartboard/internal/chart/models"
)

type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown render format")

// ParseFormat разбирает имя формата, пустое значение означает svg.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatSVG, nil
	case FormatSVG, FormatPNG, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "image/svg+xml"
}

// Encode отрисовывает план в выбранный формат.
func Encode(plan models.RenderPlan, f Format) ([]byte, error) {
	var buf bytes.Buffer

	switch f {
	case FormatSVG:
		svg, err := NewSVGRenderer().Render(plan)
		if err != nil {
			return nil, err
		}
		buf.WriteString(svg)
	case FormatPNG:
		if err := PNG(&buf, plan); err != nil {
			return nil, err
		}
	case FormatXLSX:
		if err := XLSX(&buf, plan); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	return buf.Bytes(), nil
}

// IsUndrawable сообщает, что формат не умеет рисовать этот план.
func IsUndrawable(err error) bool {
	return errors.Is(err, ErrNotRasterizable) || errors.Is(err, ErrNothingToExport)
}

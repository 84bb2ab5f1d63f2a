package generator

import (
	"errors"
	"math"
	"strings"

	"chartboard/internal/chart/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ============================================================
// Deterministic Spec Generator
// ============================================================

// Заглушка вместо настоящего сервиса вывода: одинаковый вопрос всегда
// даёт одинаковую спеку.

var ErrEmptyQuestion = errors.New("question is empty")

var (
	seedTypes  = []models.ChartType{models.TypeBar, models.TypeLine, models.TypePie, models.TypeScatter}
	categories = []string{"A", "B", "C", "D", "E", "F"}
	months     = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul"}
)

// Seed сумма кодов символов вопроса в нижнем регистре.
func Seed(question string) int {
	seed := 0
	for _, r := range normalize(question) {
		seed += int(r)
	}
	return seed
}

// Generate строит спеку графика по тексту вопроса.
func Generate(question string) (*models.ChartSpec, error) {
	q := normalize(question)
	if q == "" {
		return nil, ErrEmptyQuestion
	}

	seed := Seed(q)

	switch {
	case strings.Contains(q, "pie"):
		return pieSpec(seed), nil
	case strings.Contains(q, "scatter"):
		return scatterSpec(seed), nil
	case strings.Contains(q, "line"):
		return lineSpec(seed), nil
	case strings.Contains(q, "table"):
		spec := barSpec(seed)
		spec.Type = models.TypeTable
		spec.XKey, spec.YKey = "", ""
		spec.Title = "Category Table"
		return spec, nil
	}

	spec := barSpec(seed)
	if t := seedTypes[seed%len(seedTypes)]; t != models.TypePie {
		spec.Type = t
	}
	return spec, nil
}

func normalize(question string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(question))
}

// ============================================================
// Spec builders
// ============================================================

func pieSpec(seed int) *models.ChartSpec {
	data := make([]models.Row, 0, 5)
	labels := make([]string, 0, 5)
	for i, c := range categories[:5] {
		data = append(data, models.Row{
			{Key: "label", Value: c},
			{Key: "value", Value: float64((seed+i)%7 + 1)},
		})
		labels = append(labels, c)
	}

	return &models.ChartSpec{
		Type:     models.TypePie,
		Data:     data,
		ValueKey: "value",
		Labels:   labels,
		Title:    "Category Share",
	}
}

func scatterSpec(seed int) *models.ChartSpec {
	data := make([]models.Row, 0, len(months))
	for i, m := range months {
		v := (seed%5+1)*i + (i%3)*2
		data = append(data, models.Row{
			{Key: "m", Value: m},
			{Key: "v", Value: float64(v)},
		})
	}

	return &models.ChartSpec{
		Type:  models.TypeScatter,
		Data:  data,
		XKey:  "m",
		YKey:  "v",
		Title: "Trend Scatter",
	}
}

func lineSpec(seed int) *models.ChartSpec {
	data := make([]models.Row, 0, len(months))
	for i, m := range months {
		v := float64(seed%7+2) * (math.Sin(float64(i)/2) + 1.2)
		data = append(data, models.Row{
			{Key: "m", Value: m},
			{Key: "v", Value: v},
		})
	}

	return &models.ChartSpec{
		Type:  models.TypeLine,
		Data:  data,
		XKey:  "m",
		YKey:  "v",
		Title: "Monthly Line",
	}
}

func barSpec(seed int) *models.ChartSpec {
	data := make([]models.Row, 0, len(categories))
	for i, c := range categories {
		data = append(data, models.Row{
			{Key: "cat", Value: c},
			{Key: "val", Value: float64((seed%9 + 1) * (i%4 + 1))},
		})
	}

	return &models.ChartSpec{
		Type:  models.TypeBar,
		Data:  data,
		XKey:  "cat",
		YKey:  "val",
		Title: "Category Bars",
	}
}

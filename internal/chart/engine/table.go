package engine

import "chartboard/internal/chart/models"

// ============================================================
// Table fallback
// ============================================================

// compileTable берёт колонки из первой строки. Каждая строка выводится
// по этим колонкам, отсутствующее поле даёт "undefined".
func compileTable(spec *models.ChartSpec) models.RenderPlan {
	if len(spec.Data) == 0 {
		return &models.EmptyPlan{Type: spec.Type}
	}

	cols := spec.Data[0].Keys()
	rows := make([][]string, 0, len(spec.Data))
	for _, row := range spec.Data {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = models.Stringify(row.Value(col))
		}
		rows = append(rows, cells)
	}

	return &models.TablePlan{
		Title:   spec.Title,
		Columns: cols,
		Rows:    rows,
	}
}

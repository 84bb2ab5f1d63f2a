package render

import (
	"errors"
	"fmt"
	"io"

	"chartboard/internal/chart/models"

	"github.com/xuri/excelize/v2"
)

// ============================================================
// XLSX Export
// ============================================================

const sheetName = "Chart"

// ErrNothingToExport у плана нет строк данных.
var ErrNothingToExport = errors.New("plan has no rows to export")

// XLSX выгружает строки плана в книгу с одним листом.
func XLSX(w io.Writer, plan models.RenderPlan) error {
	header, rows, err := sheetRows(plan)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	return f.Write(w)
}

func sheetRows(plan models.RenderPlan) ([]any, [][]any, error) {
	switch p := plan.(type) {
	case *models.TablePlan:
		header := make([]any, len(p.Columns))
		for i, c := range p.Columns {
			header[i] = c
		}
		rows := make([][]any, len(p.Rows))
		for i, r := range p.Rows {
			cells := make([]any, len(r))
			for j, c := range r {
				cells[j] = c
			}
			rows[i] = cells
		}
		return header, rows, nil

	case *models.CartesianPlan:
		var rows [][]any
		for _, b := range p.Bars {
			rows = append(rows, []any{b.Category, b.Value})
		}
		for _, m := range p.Markers {
			rows = append(rows, []any{m.Category, m.Value})
		}
		return []any{"category", "value"}, rows, nil

	case *models.PiePlan:
		rows := make([][]any, len(p.Slices))
		for i, s := range p.Slices {
			label := ""
			if s.Label != nil {
				label = s.Label.Text
			}
			share := 0.0
			if p.Total > 0 {
				share = s.Value / p.Total
			}
			rows[i] = []any{label, s.Value, share}
		}
		return []any{"label", "value", "share"}, rows, nil
	}

	return nil, nil, fmt.Errorf("%w: %s", ErrNothingToExport, kindOf(plan))
}

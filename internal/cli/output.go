package cli

import (
	"fmt"
	"io"
	"strings"

	"chartboard/internal/chart/engine"
	chart "chartboard/internal/chart/models"
	"chartboard/internal/dashboard/models"

	"github.com/fatih/color"
)

// ============================================================
// Terminal Output
// ============================================================

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	okColor    = color.New(color.FgGreen)
	errColor   = color.New(color.FgRed)
	dimColor   = color.New(color.FgHiBlack)
	roleColors = map[string]*color.Color{
		models.RoleUser:      color.New(color.FgYellow),
		models.RoleAssistant: color.New(color.FgCyan),
	}
)

// Describe кратко описывает, что получится из спеки.
func Describe(spec *chart.ChartSpec) string {
	plan, err := engine.Compile(spec)
	if err != nil {
		return err.Error()
	}

	switch p := plan.(type) {
	case *chart.CartesianPlan:
		return fmt.Sprintf("%s chart, %d categories, max %s", p.Type, len(p.Categories), chart.FormatNumber(p.YMax))
	case *chart.PiePlan:
		return fmt.Sprintf("pie chart, %d slices, total %s", len(p.Slices), chart.FormatNumber(p.Total))
	case *chart.TablePlan:
		return fmt.Sprintf("table, %d columns x %d rows", len(p.Columns), len(p.Rows))
	case *chart.EmptyPlan:
		return fmt.Sprintf("%s chart with no data", p.Type)
	case *chart.UnsupportedPlan:
		return fmt.Sprintf("unsupported chart type %q", p.Type)
	}
	return string(plan.Kind())
}

func printMessage(w io.Writer, msg models.Message) {
	c, ok := roleColors[msg.Role]
	if !ok {
		c = dimColor
	}
	c.Fprintf(w, "[%s] ", msg.Role)
	fmt.Fprintln(w, msg.Content)
	if msg.Spec != nil {
		dimColor.Fprintf(w, "  └─ %s (%s)\n", Describe(msg.Spec), msg.ID)
	}
}

func printCards(w io.Writer, cards []models.Card) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "Dashboard is empty.")
		return
	}

	titleColor.Fprintf(w, "%d cards:\n", len(cards))
	for i, card := range cards {
		fmt.Fprintf(w, "  %d. %-24s %s\n", i+1, truncate(card.Title, 24), dimColor.Sprintf("%s  span %d  %s", card.ID, card.Layout.ColSpan, card.Spec.Type))
	}
}

func printError(w io.Writer, err error) {
	errColor.Fprintf(w, "Error: %v\n", err)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}

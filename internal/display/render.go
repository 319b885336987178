package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hammamikhairi/airfryer/internal/convert"
	"github.com/hammamikhairi/airfryer/internal/domain"
)

// RenderResult returns the boxed summary of a successful conversion.
func RenderResult(res domain.ConversionResult) string {
	sym := res.Unit.Symbol()

	rows := []string{
		headingStyle.Render(res.Category.Icon + "  " + res.Category.Name),
		"",
		labelStyle.Render("Oven       ") + primaryStyle.Render(fmt.Sprintf("%d%s  %d min", res.OvenTemp, sym, res.OvenMinutes)),
		labelStyle.Render("Air fryer  ") + valueStyle.Render(fmt.Sprintf("%d%s  %d min", res.AirTemp, sym, res.AirMinutes)),
		"",
		secondaryStyle.Render(fmt.Sprintf("%d%s cooler, %d min saved", res.TempReduction, sym, res.MinutesSaved)),
	}
	if res.Tip != "" {
		rows = append(rows, secondaryStyle.Render("Tip: "+res.Tip))
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// RenderViolations lists every reason a conversion was rejected.
func RenderViolations(vs []convert.Violation) string {
	var b strings.Builder
	b.WriteString(urgentStyle.Render("Cannot convert:"))
	for _, v := range vs {
		b.WriteByte('\n')
		b.WriteString(urgentStyle.Render("  • " + v.Message))
	}
	return b.String()
}

// RenderCategories returns the catalog as a table.
func RenderCategories(cats []domain.FoodCategory) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(sepStyle).
		Headers("", "CATEGORY", "ID", "TEMP", "TIME", "MIN SAFE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return labelStyle.Bold(true).Padding(0, 1)
			}
			return primaryStyle.Padding(0, 1)
		})

	for _, c := range cats {
		reduction := "same"
		if c.ReductionF > 0 {
			reduction = fmt.Sprintf("−%d°F", c.ReductionF)
		}
		floor := "-"
		if c.MinSafeF > 0 {
			floor = fmt.Sprintf("%d°F", c.MinSafeF)
		}
		t.Row(c.Icon, c.Name, string(c.ID), reduction, fmt.Sprintf("×%d%%", c.TimePercent), floor)
	}
	return t.Render()
}

// RenderStatus is a one-line, uncoloured timer summary for headless use.
func RenderStatus(s domain.TimerState) string {
	label := s.Label
	if label == "" {
		label = "timer"
	}
	switch s.Status {
	case domain.TimerFinished:
		return fmt.Sprintf("%s: DONE (%s total)", label, fmtDuration(s.Duration))
	default:
		return fmt.Sprintf("%s: %s %s of %s", label, s.Status, fmtDuration(s.Remaining), fmtDuration(s.Duration))
	}
}

// ── Helpers ──────────────────────────────────────────────────────

func fmtDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if m == 0 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

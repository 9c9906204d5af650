package tui

import (
	"fmt"
	"path/filepath"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshStats fills the statistics table from the current grid.
func (m *Model) refreshStats() {
	if m.grid == nil {
		m.showStats = false
		m.status = "no grid loaded"
		return
	}
	rows := statRows(m)
	// clear rows first so the table never sees rows wider than its columns
	m.tbl.SetRows(nil)
	m.tbl.SetColumns([]table.Column{
		{Title: "stat", Width: 10},
		{Title: "value", Width: 24},
	})
	m.tbl.SetRows(rows)
}

func statRows(m *Model) []table.Row {
	r, c := m.grid.Dims()
	nonzero := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.grid.At(i, j) != 0 {
				nonzero++
			}
		}
	}
	g := func(v float64) string { return strconv.FormatFloat(v, 'g', 8, 64) }
	return []table.Row{
		{"file", filepath.Base(m.selPath)},
		{"rows", strconv.Itoa(m.stats.Rows)},
		{"cols", strconv.Itoa(m.stats.Cols)},
		{"min", g(m.stats.Min)},
		{"max", g(m.stats.Max)},
		{"mean", g(m.stats.Mean)},
		{"nonzero", fmt.Sprintf("%d (%.1f%%)", nonzero, 100*float64(nonzero)/float64(r*c))},
		{"mode", m.mode.String()},
	}
}

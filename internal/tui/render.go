package tui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// scale returns how many grid columns one terminal column spans on a map
// of w by h terminal cells. A terminal row spans two grid rows.
func (m Model) scale(w, h int) float64 {
	if m.grid == nil || w <= 0 || h <= 0 {
		return 1
	}
	rows, cols := m.grid.Dims()
	fit := max(float64(cols)/float64(w), float64(rows)/float64(2*h))
	return fit / m.zoom
}

// cellAt returns the grid cell containing grid coordinate (gx, gy).
func (m Model) cellAt(gx, gy float64) (row, col int, ok bool) {
	if m.grid == nil || gx < 0 || gy < 0 {
		return 0, 0, false
	}
	rows, cols := m.grid.Dims()
	row, col = int(gy), int(gx)
	if row >= rows || col >= cols {
		return 0, 0, false
	}
	return row, col, true
}

// screenToCell maps the upper (half 0) or lower (half 1) half of map cell
// (x, y) to a grid cell.
func (m Model) screenToCell(x, y, half, w, h int) (int, int, bool) {
	s := m.scale(w, h)
	gx := m.centerX + (float64(x)+0.5-float64(w)/2)*s
	gy := m.centerY + (float64(2*y+half)+0.5-float64(h))*s
	return m.cellAt(gx, gy)
}

// resetView fits the whole grid and centers it.
func (m *Model) resetView() {
	m.zoom = 1
	m.centerX, m.centerY = 0, 0
	if m.grid != nil {
		rows, cols := m.grid.Dims()
		m.centerX, m.centerY = float64(cols)/2, float64(rows)/2
	}
}

// pan moves the viewport by dx terminal columns and dy terminal rows.
func (m *Model) pan(dx, dy int) {
	s := m.scale(max(8, m.mapW), max(4, m.mapH))
	m.centerX += float64(dx) * s
	m.centerY += float64(2*dy) * s
}

func (m Model) renderMap(w, h int) string {
	if m.grid == nil {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dimStyle.Render("no grid loaded: press Tab to pick a file"))
	}
	if m.mode == ModeOutline {
		return m.renderOutline(w, h)
	}
	return m.renderShaded(w, h)
}

// renderShaded draws two grid rows per terminal row with upper half blocks:
// the foreground carries the upper cell, the background the lower one.
func (m Model) renderShaded(w, h int) string {
	lines := make([]string, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.Reset()
		for x := 0; x < w; x++ {
			if m.hovering && x == m.hoverCellX && y == m.hoverCellY {
				sb.WriteString(hoverStyle.Render("◯"))
				continue
			}
			tr, tc, tok := m.screenToCell(x, y, 0, w, h)
			br, bc, bok := m.screenToCell(x, y, 1, w, h)
			switch {
			case tok && bok:
				st := lipgloss.NewStyle().
					Foreground(hexColor(m.pixels.NRGBAAt(tc, tr))).
					Background(hexColor(m.pixels.NRGBAAt(bc, br)))
				sb.WriteString(st.Render("▀"))
			case tok:
				sb.WriteString(lipgloss.NewStyle().Foreground(hexColor(m.pixels.NRGBAAt(tc, tr))).Render("▀"))
			case bok:
				sb.WriteString(lipgloss.NewStyle().Foreground(hexColor(m.pixels.NRGBAAt(bc, br))).Render("▄"))
			default:
				sb.WriteByte(' ')
			}
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// renderOutline traces the edges of nonzero regions and the grid extent on
// a braille micro-grid of 2x4 dots per terminal cell.
func (m Model) renderOutline(w, h int) string {
	br := newBrailleBuf(w, h)
	half := m.scale(w, h) / 2
	// grid coordinate of micro-pixel (0, 0)
	ox := m.centerX - float64(w)*half
	oy := m.centerY - float64(2*h)*half
	occupied := func(mx, my int) bool {
		gx := ox + (float64(mx)+0.5)*half
		gy := oy + (float64(my)+0.5)*half
		r, c, ok := m.cellAt(gx, gy)
		return ok && m.grid.At(r, c) != 0
	}
	for my := 0; my < 4*h; my++ {
		for mx := 0; mx < 2*w; mx++ {
			if !occupied(mx, my) {
				continue
			}
			if !occupied(mx-1, my) || !occupied(mx+1, my) || !occupied(mx, my-1) || !occupied(mx, my+1) {
				br.setPixel(mx, my)
			}
		}
	}

	rows, cols := m.grid.Dims()
	toMicro := func(gx, gy float64) (int, int) {
		mx := (gx - ox) / half
		my := (gy - oy) / half
		// keep far off-screen corners from making the line walk huge
		lim := float64(8 * (w + h))
		return int(math.Max(-lim, math.Min(lim, mx))), int(math.Max(-lim, math.Min(lim, my)))
	}
	x0, y0 := toMicro(0, 0)
	x1, y1 := toMicro(float64(cols), float64(rows))
	x1, y1 = x1-1, y1-1
	br.drawLineMicro(x0, y0, x1, y0)
	br.drawLineMicro(x1, y0, x1, y1)
	br.drawLineMicro(x1, y1, x0, y1)
	br.drawLineMicro(x0, y1, x0, y0)

	lines := br.toLines()
	if m.hovering && m.hoverCellY >= 0 && m.hoverCellY < len(lines) {
		r := []rune(lines[m.hoverCellY])
		if m.hoverCellX >= 0 && m.hoverCellX < len(r) {
			lines[m.hoverCellY] = string(r[:m.hoverCellX]) + hoverStyle.Render("◯") + string(r[m.hoverCellX+1:])
		}
	}
	return strings.Join(lines, "\n")
}

// inspectCenter describes the cell at the center of the map.
func (m Model) inspectCenter() (string, bool) {
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	r, c, ok := m.screenToCell(w/2, h/2, 0, w, h)
	if !ok {
		return "", false
	}
	meta := []string{
		fmt.Sprintf("file: %s", m.selPath),
		fmt.Sprintf("cell: row=%d col=%d", r, c),
		fmt.Sprintf("value: %g", m.grid.At(r, c)),
		fmt.Sprintf("grid: %dx%d  min=%g max=%g", m.stats.Rows, m.stats.Cols, m.stats.Min, m.stats.Max),
		fmt.Sprintf("zoom: %.2fx  mode: %s", m.zoom, m.mode),
	}
	return strings.Join(meta, "\n"), true
}

func hexColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

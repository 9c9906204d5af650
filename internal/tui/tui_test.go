package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/mat"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func block() *mat.Dense {
	g := mat.NewDense(6, 6, nil)
	for i := 1; i < 5; i++ {
		for j := 1; j < 5; j++ {
			g.Set(i, j, 3)
		}
	}
	return g
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"normal", "hillshade", "outline"} {
		mode, err := ParseMode(name)
		if err != nil {
			t.Fatalf("ParseMode(%q) error = %v", name, err)
		}
		if mode.String() != name {
			t.Errorf("ParseMode(%q).String() = %q", name, mode.String())
		}
	}
	if _, err := ParseMode("relief"); err == nil {
		t.Error("ParseMode(relief) succeeded")
	}
}

func TestModeCycle(t *testing.T) {
	m := NewWithGrid("g.txt", block(), ModeNormal)
	want := []Mode{ModeHillshade, ModeOutline, ModeNormal}
	for _, w := range want {
		m = update(t, m, key("m"))
		if m.Mode() != w {
			t.Fatalf("after m: mode = %v, want %v", m.Mode(), w)
		}
		if m.pixels == nil {
			t.Fatal("pixels not computed")
		}
	}
}

func TestZoomAndPan(t *testing.T) {
	m := update(t, NewWithGrid("g.txt", block(), ModeNormal), tea.WindowSizeMsg{Width: 40, Height: 12})
	m = update(t, m, key("+"))
	if m.zoom <= 1 {
		t.Errorf("zoom after + = %g, want > 1", m.zoom)
	}
	x := m.centerX
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.centerX <= x {
		t.Errorf("centerX after right = %g, want > %g", m.centerX, x)
	}
	m = update(t, m, key("0"))
	if m.zoom != 1 || m.centerX != 3 || m.centerY != 3 {
		t.Errorf("reset view = zoom %g center (%g, %g), want 1 (3, 3)", m.zoom, m.centerX, m.centerY)
	}
}

func TestQuit(t *testing.T) {
	_, cmd := NewWithGrid("g.txt", block(), ModeNormal).Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestViewShaded(t *testing.T) {
	m := update(t, NewWithGrid("g.txt", block(), ModeHillshade), tea.WindowSizeMsg{Width: 40, Height: 12})
	v := m.View()
	if !strings.Contains(v, "celeris") {
		t.Error("View() has no title")
	}
	if !strings.Contains(v, "▀") {
		t.Error("View() has no half-block cells")
	}
}

func TestViewOutline(t *testing.T) {
	m := update(t, NewWithGrid("g.txt", block(), ModeOutline), tea.WindowSizeMsg{Width: 40, Height: 12})
	hasBraille := strings.ContainsFunc(m.View(), func(r rune) bool {
		return r > 0x2800 && r <= 0x28FF
	})
	if !hasBraille {
		t.Error("outline view has no braille dots")
	}
}

func TestHover(t *testing.T) {
	// a 199x9 map shows the 6x6 grid at a third of a cell per column,
	// centered: map column 91 falls in grid column 0
	m := update(t, NewWithGrid("g.txt", block(), ModeNormal),
		tea.WindowSizeMsg{Width: 200, Height: 12},
		tea.MouseMsg{X: 91, Y: headerHeight, Action: tea.MouseActionMotion},
	)
	if !m.hoverGrid || m.hoverRow != 0 || m.hoverCol != 0 {
		t.Fatalf("hover = %v (%d, %d), want cell (0, 0)", m.hoverGrid, m.hoverRow, m.hoverCol)
	}
	if v := m.View(); !strings.Contains(v, "row=0 col=0 value=0") {
		t.Error("View() footer does not show the hovered cell")
	}
	m = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	if m.hovering {
		t.Error("hovering over the header")
	}
}

func TestInspect(t *testing.T) {
	m := update(t, NewWithGrid("g.txt", block(), ModeNormal), tea.WindowSizeMsg{Width: 40, Height: 12}, key("i"))
	if !strings.Contains(m.inspectPopup, "value: 3") {
		t.Errorf("inspect popup = %q, want the center value 3", m.inspectPopup)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inspectPopup != "" {
		t.Error("esc did not close the popup")
	}
}

func TestStats(t *testing.T) {
	m := update(t, NewWithGrid("g.txt", block(), ModeNormal), key("a"))
	if !m.showStats {
		t.Fatal("a did not open the statistics table")
	}
	got := map[string]string{}
	for _, r := range m.tbl.Rows() {
		got[r[0]] = r[1]
	}
	want := map[string]string{"rows": "6", "cols": "6", "min": "0", "max": "3", "nonzero": "16 (44.4%)"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("stat %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestLoadPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "dem.txt")
	if err := os.WriteFile(p, []byte("1 2\n3 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewWithPath(p, ModeNormal)
	if m.grid == nil || m.grid.At(1, 1) != 4 {
		t.Fatalf("NewWithPath() grid = %v", m.grid)
	}
	bad := NewWithPath(filepath.Join(t.TempDir(), "missing.txt"), ModeNormal)
	if bad.grid != nil || !strings.HasPrefix(bad.status, "load error") {
		t.Errorf("missing file: status = %q", bad.status)
	}
}

func TestBraille(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0)
	b.setPixel(3, 3)
	b.setPixel(9, 9)
	lines := b.toLines()
	if got := []rune(lines[0]); got[0] != 0x2801 || got[1] != 0x2880 {
		t.Errorf("toLines() = %U", got)
	}

	b = newBrailleBuf(2, 1)
	b.drawLineMicro(0, 0, 3, 0)
	if got := []rune(b.toLines()[0]); got[0] != 0x2809 || got[1] != 0x2809 {
		t.Errorf("horizontal line = %U, want [U+2809 U+2809]", got)
	}
}

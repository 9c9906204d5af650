// Package tui is an interactive terminal viewer for elevation grids.
package tui

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/mat"

	"celeris/internal/shade"
)

// Mode selects how grid cells are drawn.
type Mode int

const (
	// ModeNormal draws min/max normalized gray levels.
	ModeNormal Mode = iota
	// ModeHillshade draws gray levels blended with a north-west hillshade.
	ModeHillshade
	// ModeOutline draws the edges of nonzero regions on a braille grid.
	ModeOutline
)

var modeNames = [...]string{"normal", "hillshade", "outline"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

const sidebarWidth = 28

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	// zoom 1 fits the whole grid; center is the grid coordinate
	// (column, row) shown in the middle of the map.
	zoom    float64
	centerX float64
	centerY float64

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	grid   *mat.Dense
	stats  shade.Stats
	mode   Mode
	pixels *image.NRGBA

	// last rendered map size (for inspect)
	mapW int
	mapH int

	inspectPopup string

	// hover state: the map cell under the mouse and the grid cell it shows
	hovering   bool
	hoverCellX int
	hoverCellY int
	hoverGrid  bool
	hoverRow   int
	hoverCol   int
	hoverVal   float64

	// statistics table
	showStats bool
	tbl       table.Model
}

// New returns an empty viewer listing the grids in the working directory.
func New() Model {
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		status:      "celeris ready",
	}
	m.cwd, _ = os.Getwd()
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Grids"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(10)
	m.refreshDir()
	return m
}

// NewWithPath preloads a grid file at launch.
func NewWithPath(path string, mode Mode) Model {
	m := New()
	m.mode = mode
	m.loadPath(path)
	return m
}

// NewWithGrid shows an in-memory grid.
func NewWithGrid(name string, grid *mat.Dense, mode Mode) Model {
	m := New()
	m.mode = mode
	m.setGrid(name, grid)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Mode returns the current drawing mode.
func (m Model) Mode() Mode { return m.mode }

// setGrid replaces the displayed grid and resets the viewport.
func (m *Model) setGrid(name string, grid *mat.Dense) {
	m.selPath = name
	m.grid = grid
	m.stats = shade.Summarize(grid)
	m.resetView()
	m.inspectPopup = ""
	m.hovering = false
	m.recolor()
	m.status = fmt.Sprintf("loaded: %s  %dx%d  min=%g max=%g", filepath.Base(name), m.stats.Rows, m.stats.Cols, m.stats.Min, m.stats.Max)
	if m.showStats {
		m.refreshStats()
	}
}

// recolor caches the per-cell colors of the current mode.
func (m *Model) recolor() {
	if m.grid == nil {
		m.pixels = nil
		return
	}
	switch m.mode {
	case ModeHillshade:
		m.pixels = shade.Shade(m.grid, shade.Gray, shade.DefaultLight)
	default:
		m.pixels = shade.Colorize(m.grid, shade.Gray)
	}
}

// Run shows m full screen until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	l := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
		l.mapX = sidebarWidth + 1
	}
	l.mapW = max(10, l.contentW-sw-1)
	l.mapH = l.contentH
	return l
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		l := m.layout()
		m.mapW, m.mapH = max(8, l.mapW), max(4, l.mapH)
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, l.contentH-2)
		}
	case tea.KeyMsg:
		// while the list filters, keys belong to it
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.resetView()
			m.status = "view reset"
		case "m":
			m.mode = (m.mode + 1) % Mode(len(modeNames))
			m.recolor()
			if m.showStats {
				m.refreshStats()
			}
			m.status = "mode: " + m.mode.String()
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
			l := m.layout()
			m.mapW, m.mapH = max(8, l.mapW), max(4, l.mapH)
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showStats = !m.showStats
			if m.showStats {
				m.refreshStats()
			}
		case "i":
			if text, ok := m.inspectCenter(); ok {
				m.inspectPopup = text
				m.status = "inspect popup"
			} else {
				m.inspectPopup = ""
				m.status = "no cell at center"
			}
		case "esc":
			m.inspectPopup = ""
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.pan(0, -1)
		case "down":
			m.pan(0, 1)
		case "left":
			m.pan(-2, 0)
		case "right":
			m.pan(2, 0)
		}
	case tea.MouseMsg:
		l := m.layout()
		cx, cy := msg.X-l.mapX, msg.Y-l.mapY
		if cx >= 0 && cx < l.mapW && cy >= 0 && cy < l.mapH {
			m.hovering = true
			m.hoverCellX, m.hoverCellY = cx, cy
			m.hoverRow, m.hoverCol, m.hoverGrid = m.screenToCell(cx, cy, 0, m.mapW, m.mapH)
			if m.hoverGrid {
				m.hoverVal = m.grid.At(m.hoverRow, m.hoverCol)
			}
		} else {
			m.hovering = false
			m.hoverGrid = false
		}
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

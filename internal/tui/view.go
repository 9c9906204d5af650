package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
	}

	header := titleStyle.Render(" celeris ─ terminal grid viewer ")
	header = lipgloss.NewStyle().Width(l.contentW).Render(header)

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	if m.showStats {
		m.tbl.SetHeight(min(l.mapH-2, 10))
		box := boxStyle.Render(m.tbl.View())
		mapView = lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, box)
	} else {
		mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(m.renderMap(l.mapW, l.mapH))
	}

	popup := ""
	if m.inspectPopup != "" && !m.showStats {
		box := boxStyle.MaxWidth(max(20, min(48, l.contentW/2))).Render(m.inspectPopup)
		popup = lipgloss.Place(l.contentW, lipgloss.Height(box), lipgloss.Left, lipgloss.Top, box)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	status := dimStyle.Render(" " + m.status + " ")
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	coords := ""
	if m.hoverGrid {
		coords = dimStyle.Render(fmt.Sprintf("  row=%d col=%d value=%g  ", m.hoverRow, m.hoverCol, m.hoverVal))
	}
	spacerW := max(0, l.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(l.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(l.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"0 reset",
		"m mode",
		"Tab files",
		"Enter open",
		"a stats",
		"i inspect",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

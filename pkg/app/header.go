package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/catalog"
)

const (
	headerHeight = 2
)

var (
	// Header styles
	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("236")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Padding(0, 2)

	brokenTabStyle = inactiveTabStyle.
			Foreground(lipgloss.Color("196"))

	tabSeparator = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Render("|")

	shortKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Faint(true)
)

// renderHeader renders the catalog title in the theme colour and the tab bar.
func renderHeader(info catalog.BasicInfo, tabs []Tab, activeIdx, width int) string {
	accent := ThemeColor(info.Theme)
	title := titleStyle.Foreground(accent).Render(info.HeaderText)

	tabBar := RenderTabBar(tabs, activeIdx, accent)

	// Right-align version and quit hint
	hint := "[q]uit"
	if info.ToolboxVersion != nil {
		hint = "v" + info.ToolboxVersion.String() + "  " + hint
	}
	quitHint := shortKeyStyle.Render(hint)

	spacing := width - lipgloss.Width(title) - lipgloss.Width(tabBar) - lipgloss.Width(quitHint) - 4
	if spacing < 1 {
		spacing = 1
	}

	headerLine := lipgloss.JoinHorizontal(
		lipgloss.Center,
		title,
		strings.Repeat(" ", 2),
		tabBar,
		strings.Repeat(" ", spacing),
		quitHint,
	)

	return headerStyle.Width(width).Render(headerLine)
}

// RenderTabBar renders the tab names with their number keys.
func RenderTabBar(tabs []Tab, activeIdx int, accent lipgloss.TerminalColor) string {
	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		label := tab.Name
		if k := ShortKey(i); k != "" {
			label = shortKeyStyle.Render("["+k+"] ") + label
		}

		switch {
		case i == activeIdx:
			parts = append(parts, activeTabStyle.Foreground(accent).Render(label))
		case tab.Broken:
			parts = append(parts, brokenTabStyle.Render(label))
		default:
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(parts, tabSeparator)
}

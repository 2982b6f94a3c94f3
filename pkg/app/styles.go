package app

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/bridge"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/catalog"
)

// defaultAccent is used when the catalog has no theme.
const defaultAccent = lipgloss.Color("39")

const detailsHeight = 6

// Common styles used across the application.
var (
	BoldStyle = lipgloss.NewStyle().Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ThemeColor returns the first colour of the catalog theme.
func ThemeColor(theme catalog.Theme) lipgloss.Color {
	if theme == nil {
		return defaultAccent
	}
	return lipgloss.Color(theme.Primary().Hex())
}

func newAppTable() table.Model {
	t := table.New(
		table.WithColumns(appColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// appColumns sizes the columns to the terminal width.
func appColumns(width int) []table.Column {
	const nameWidth, descWidth = 20, 32
	pathWidth := width - nameWidth - descWidth - 8
	if pathWidth < 20 {
		pathWidth = 20
	}
	return []table.Column{
		{Title: "NAME", Width: nameWidth},
		{Title: "DESCRIPTION", Width: descWidth},
		{Title: "PATH", Width: pathWidth},
	}
}

func appRows(apps []bridge.AppView) []table.Row {
	rows := make([]table.Row, len(apps))
	for i, a := range apps {
		rows[i] = table.Row{a.Name, a.Desc, a.AppPath}
	}
	return rows
}

// renderDetails renders the full record of the selected app.
func renderDetails(app bridge.AppView, width int) string {
	line := func(label, value string) string {
		if value == "" {
			value = DimStyle.Render("-")
		}
		return BoldStyle.Render(label) + " " + value
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		line("Path:       ", app.AppPath),
		line("Arguments:  ", app.LaunchArgs),
		line("Working dir:", app.WorkingDir),
		line("Description:", app.Desc),
	)
	return BoxStyle.Width(width - 2).Render(body)
}

package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/doctor"
)

// HealthChecker runs the catalog health checks. *doctor.Checker satisfies it.
type HealthChecker interface {
	CheckAll() []doctor.CheckGroup
	GetSummary(groups []doctor.CheckGroup) doctor.Summary
}

// checksLoadedMsg indicates checks have completed.
type checksLoadedMsg struct {
	groups []doctor.CheckGroup
}

// healthItem is a flattened row: either a group header or a check.
type healthItem struct {
	group *doctor.CheckGroup
	check *doctor.Check
}

// healthPanel lists check results grouped like the doctor command.
type healthPanel struct {
	checker HealthChecker
	groups  []doctor.CheckGroup
	items   []healthItem
	cursor  int
	loading bool
	spinner spinner.Model
}

func newHealthPanel(checker HealthChecker) *healthPanel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &healthPanel{checker: checker, spinner: s}
}

// start begins a new round of checks.
func (p *healthPanel) start() tea.Cmd {
	p.loading = true
	checker := p.checker
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		return checksLoadedMsg{groups: checker.CheckAll()}
	})
}

func (p *healthPanel) setGroups(groups []doctor.CheckGroup) {
	p.loading = false
	p.groups = groups
	p.items = nil
	for i := range groups {
		group := &groups[i]
		p.items = append(p.items, healthItem{group: group})
		for j := range group.Checks {
			p.items = append(p.items, healthItem{check: &group.Checks[j]})
		}
	}

	// Position cursor on the first check
	p.cursor = 0
	for i, item := range p.items {
		if item.check != nil {
			p.cursor = i
			break
		}
	}
}

// moveCursor moves the selection, skipping group headers.
func (p *healthPanel) moveCursor(delta int) {
	pos := p.cursor + delta
	for pos >= 0 && pos < len(p.items) && p.items[pos].check == nil {
		pos += delta
	}
	if pos >= 0 && pos < len(p.items) {
		p.cursor = pos
	}
}

// selected returns the check under the cursor.
func (p *healthPanel) selected() (*doctor.Check, bool) {
	if p.cursor < 0 || p.cursor >= len(p.items) || p.items[p.cursor].check == nil {
		return nil, false
	}
	return p.items[p.cursor].check, true
}

func (p *healthPanel) summary() string {
	if len(p.groups) == 0 {
		return ""
	}
	s := p.checker.GetSummary(p.groups)

	var parts []string
	if s.OK > 0 {
		parts = append(parts, SuccessStyle.Render(fmt.Sprintf("✓ %d", s.OK)))
	}
	if s.Missing+s.Errors > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("✗ %d", s.Missing+s.Errors)))
	}
	if s.Warnings > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("⚠ %d", s.Warnings)))
	}
	if len(parts) == 0 {
		return DimStyle.Render("No checks")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, joinSpaced(parts)...)
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}

func statusIcon(s doctor.CheckStatus) string {
	switch s {
	case doctor.StatusOK:
		return SuccessStyle.Render("✓")
	case doctor.StatusWarning:
		return WarningStyle.Render("⚠")
	case doctor.StatusError:
		return ErrorStyle.Render("!")
	default:
		return ErrorStyle.Render("✗")
	}
}

func (p *healthPanel) view(width int) string {
	title := BoldStyle.Render("Health")
	if p.loading {
		title += " " + p.spinner.View()
	}
	header := title
	if s := p.summary(); s != "" {
		gap := width - lipgloss.Width(title) - lipgloss.Width(s) - 2
		if gap < 1 {
			gap = 1
		}
		header = title + lipgloss.NewStyle().Width(gap).Render("") + s
	}

	if p.loading && len(p.groups) == 0 {
		return header + "\n\n  " + p.spinner.View() + " Checking apps..."
	}

	selected := lipgloss.NewStyle().Background(lipgloss.Color("237"))
	lines := []string{header}
	for i, item := range p.items {
		if item.check == nil {
			lines = append(lines, "", "  "+BoldStyle.Render(item.group.Name))
			if len(item.group.Checks) == 0 {
				lines = append(lines, "    "+DimStyle.Render("nothing to check"))
			}
			continue
		}

		cursor := "  "
		if i == p.cursor {
			cursor = "▸ "
		}
		c := item.check
		line := fmt.Sprintf("  %s%s %-16s %s", cursor, statusIcon(c.Status), c.Name, DimStyle.Render(c.Message))
		if i == p.cursor {
			line = selected.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// handleHealthKey handles keys while the health panel is open.
func (m Model) handleHealthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.health.moveCursor(-1)
	case "down", "j":
		m.health.moveCursor(1)
	case "r":
		return m, m.health.start()
	case "enter":
		check, ok := m.health.selected()
		switch {
		case !ok:
		case check.Status == doctor.StatusOK:
			m.setStatus(check.Name+" is fine", true)
		case check.FixCommand == nil:
			m.setStatus("no fix for "+check.Name, false)
		default:
			m.setStatus(check.FixCommand.Description+": "+check.FixCommand.Command, false)
		}
	}
	return m, nil
}

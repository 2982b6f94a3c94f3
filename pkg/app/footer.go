package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/utils"
)

const (
	footerHeight = 2
)

var (
	// Footer styles
	footerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	keyBindingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	bindingSeparator = keyBindingStyle.Render("  ")
)

// GlobalBindings returns the global key bindings shown in all tabs.
func GlobalBindings() []string {
	return []string{
		"[Tab] next",
		"[q] quit",
	}
}

// renderFooter renders key bindings on the left and the last status on the
// right.
func renderFooter(tabBindings []string, status Status, width int) string {
	allBindings := make([]string, 0, len(tabBindings)+len(GlobalBindings()))
	for _, b := range tabBindings {
		allBindings = append(allBindings, formatBinding(b))
	}
	for _, b := range GlobalBindings() {
		allBindings = append(allBindings, formatBinding(b))
	}
	bindingsStr := strings.Join(allBindings, bindingSeparator)

	statusStr := RenderStatus(status)
	if statusStr == "" {
		return footerStyle.Width(width).Render(bindingsStr)
	}

	spacing := width - lipgloss.Width(bindingsStr) - lipgloss.Width(statusStr) - 2
	if spacing < 1 {
		spacing = 1
	}
	return footerStyle.Width(width).Render(bindingsStr + strings.Repeat(" ", spacing) + statusStr)
}

// RenderStatus renders the status text with its age, coloured by outcome.
func RenderStatus(s Status) string {
	if s.Text == "" {
		return ""
	}
	style := SuccessStyle
	if !s.OK {
		style = ErrorStyle
	}
	return style.Render(s.Text) + DimStyle.Render(" ("+utils.FormatTimeAgo(s.At)+")")
}

// formatBinding formats a key binding string like "[k] action" with proper styling.
func formatBinding(binding string) string {
	// Parse "[key] action" format
	if len(binding) < 3 || binding[0] != '[' {
		return keyBindingStyle.Render(binding)
	}

	closeIdx := strings.Index(binding, "]")
	if closeIdx == -1 {
		return keyBindingStyle.Render(binding)
	}

	key := binding[0 : closeIdx+1]
	action := binding[closeIdx+1:]

	return keyStyle.Render(key) + keyBindingStyle.Render(action)
}

// RenderKeyBindings renders a list of key bindings.
func RenderKeyBindings(bindings []string) string {
	formatted := make([]string, len(bindings))
	for i, b := range bindings {
		formatted[i] = formatBinding(b)
	}
	return strings.Join(formatted, bindingSeparator)
}

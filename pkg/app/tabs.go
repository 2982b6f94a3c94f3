package app

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/bridge"
)

// AllAppsTab is the name of the tab listing every registered app.
const AllAppsTab = "All apps"

// maxShortcutTabs is how many tabs get a number key.
const maxShortcutTabs = 9

// Tab is one page of the browser: a category, or every app.
type Tab struct {
	Name string
	Apps []bridge.AppView
	// Broken is set when the category lists an app that is not registered.
	Broken bool
}

// ShortKey returns the number key for tab idx, or "" past the ninth tab.
func ShortKey(idx int) string {
	if idx < 0 || idx >= maxShortcutTabs {
		return ""
	}
	return strconv.Itoa(idx + 1)
}

// tabShortcut maps a number key to a tab index.
func tabShortcut(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}

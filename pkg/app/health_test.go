package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/doctor"
)

// fakeChecker returns canned check groups.
type fakeChecker struct {
	groups []doctor.CheckGroup
	runs   int
}

func (f *fakeChecker) CheckAll() []doctor.CheckGroup {
	f.runs++
	return f.groups
}

func (f *fakeChecker) GetSummary(groups []doctor.CheckGroup) doctor.Summary {
	return (&doctor.Checker{}).GetSummary(groups)
}

func newFakeChecker() *fakeChecker {
	return &fakeChecker{groups: []doctor.CheckGroup{
		{ID: doctor.GroupEnvironment, Name: "Environment", Checks: []doctor.Check{
			{ID: doctor.IDShell, Name: "Shell", Status: doctor.StatusOK, Message: "/bin/sh"},
		}},
		{ID: doctor.GroupApps, Name: "Apps", Checks: []doctor.Check{
			{ID: "app:term", Name: "term", Status: doctor.StatusOK},
			{ID: "app:ghost", Name: "ghost", Status: doctor.StatusMissing, Message: "app path not found: ./ghost.sh",
				FixCommand: &doctor.FixCommand{Description: "Point the app at an existing file", Command: `toolbox app edit "ghost"`}},
		}},
		{ID: doctor.GroupCatalog, Name: "Catalog"},
	}}
}

// openHealth toggles the panel and runs the checks synchronously.
func openHealth(t *testing.T, m Model, checker *fakeChecker) Model {
	t.Helper()
	updated, cmd := m.Update(keyMsg("d"))
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.HealthVisible())

	updated, _ = m.Update(checksLoadedMsg{groups: checker.CheckAll()})
	return updated.(Model)
}

func TestHealth_DisabledWithoutChecker(t *testing.T) {
	m := loaded(t, newFakeSource())

	updated, cmd := m.Update(keyMsg("d"))
	m = updated.(Model)
	assert.False(t, m.HealthVisible())
	assert.Nil(t, cmd)
	assert.NotContains(t, m.View(), "[d] health")
}

func TestHealth_Toggle(t *testing.T) {
	checker := newFakeChecker()
	m := loaded(t, newFakeSource()).WithHealth(checker)
	assert.Contains(t, m.View(), "[d] health")

	m = openHealth(t, m, checker)
	view := m.View()
	assert.Contains(t, view, "Health")
	assert.Contains(t, view, "Environment")
	assert.Contains(t, view, "ghost")
	assert.Contains(t, view, "nothing to check")
	assert.Contains(t, view, "[r] recheck")

	updated, _ := m.Update(keyMsg("d"))
	m = updated.(Model)
	assert.False(t, m.HealthVisible())
	assert.NotContains(t, m.View(), "ghost.sh")
}

func TestHealth_CursorSkipsGroups(t *testing.T) {
	checker := newFakeChecker()
	m := openHealth(t, loaded(t, newFakeSource()).WithHealth(checker), checker)

	check, ok := m.health.selected()
	require.True(t, ok)
	assert.Equal(t, "Shell", check.Name)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	check, _ = m.health.selected()
	assert.Equal(t, "term", check.Name, "group header is skipped")

	updated, _ = m.Update(keyMsg("j"))
	m = updated.(Model)
	check, _ = m.health.selected()
	assert.Equal(t, "ghost", check.Name)

	// Trailing group has no checks, cursor stays put
	updated, _ = m.Update(keyMsg("j"))
	m = updated.(Model)
	check, _ = m.health.selected()
	assert.Equal(t, "ghost", check.Name)

	updated, _ = m.Update(keyMsg("k"))
	m = updated.(Model)
	check, _ = m.health.selected()
	assert.Equal(t, "term", check.Name)
}

func TestHealth_EnterShowsFix(t *testing.T) {
	checker := newFakeChecker()
	m := openHealth(t, loaded(t, newFakeSource()).WithHealth(checker), checker)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.True(t, m.Status().OK)
	assert.Equal(t, "Shell is fine", m.Status().Text)

	m.health.moveCursor(1)
	m.health.moveCursor(1)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.False(t, m.Status().OK)
	assert.Contains(t, m.Status().Text, `toolbox app edit "ghost"`)
}

func TestHealth_KeysDoNotLaunch(t *testing.T) {
	src := newFakeSource()
	checker := newFakeChecker()
	m := openHealth(t, loaded(t, src).WithHealth(checker), checker)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.Empty(t, src.launched)

	updated, _ = m.Update(keyMsg("r"))
	m = updated.(Model)
	assert.True(t, m.health.loading)
	assert.Equal(t, 0, src.loads, "catalog reload is not triggered")
}

func TestHealth_Summary(t *testing.T) {
	checker := newFakeChecker()
	p := newHealthPanel(checker)
	assert.Empty(t, p.summary())

	p.setGroups(checker.groups)
	s := p.summary()
	assert.Contains(t, s, "✓ 2")
	assert.Contains(t, s, "✗ 1")
	assert.False(t, p.loading)
}

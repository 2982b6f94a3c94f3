// Package app provides the full-screen catalog browser. It follows the
// Bubble Tea architecture with one tab per category.
package app

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/bridge"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/catalog"
)

// StatusRefreshInterval is how often the footer re-renders the status age.
const StatusRefreshInterval = 30 * time.Second

var errReloadFailed = errors.New("failed to reload catalog")

// Source is the catalog surface the browser reads and launches through.
// *bridge.Service satisfies it.
type Source interface {
	LoadConfig() bool
	GetConfigBasicInfo() catalog.BasicInfo
	GetCategoryList() []string
	GetAllAppList() []bridge.AppView
	GetAppListByCategory(category string) ([]bridge.AppView, bool)
	LaunchApp(name string) bool
}

// Message types for async operations.
type (
	// catalogLoadedMsg carries a fresh snapshot of the catalog.
	catalogLoadedMsg struct {
		info catalog.BasicInfo
		tabs []Tab
		err  error
	}

	// launchResultMsg reports the outcome of launching an app.
	launchResultMsg struct {
		app string
		ok  bool
	}

	// statusTickMsg refreshes the relative status time.
	statusTickMsg struct{}
)

// Status is the last action shown in the footer.
type Status struct {
	Text string
	OK   bool
	At   time.Time
}

// Model is the main application model.
type Model struct {
	src         Source
	info        catalog.BasicInfo
	tabs        []Tab
	activeTab   int
	table       table.Model
	width       int
	height      int
	loading     bool
	showDetails bool
	showHealth  bool
	health      *healthPanel
	quitting    bool
	status      Status
	err         error
}

// New creates a new browser over src.
func New(src Source) Model {
	return Model{
		src:     src,
		info:    catalog.New().BasicInfo(),
		table:   newAppTable(),
		loading: true,
	}
}

// WithHealth enables the health panel, toggled with d.
func (m Model) WithHealth(checker HealthChecker) Model {
	if checker != nil {
		m.health = newHealthPanel(checker)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCatalog(m.src, false), statusTick())
}

// loadCatalog snapshots the catalog, re-reading the file first when reload
// is set.
func loadCatalog(src Source, reload bool) tea.Cmd {
	return func() tea.Msg {
		if reload && !src.LoadConfig() {
			return catalogLoadedMsg{err: errReloadFailed}
		}

		tabs := []Tab{{Name: AllAppsTab, Apps: src.GetAllAppList()}}
		for _, name := range src.GetCategoryList() {
			apps, ok := src.GetAppListByCategory(name)
			tabs = append(tabs, Tab{Name: name, Apps: apps, Broken: !ok})
		}
		return catalogLoadedMsg{info: src.GetConfigBasicInfo(), tabs: tabs}
	}
}

func launchApp(src Source, name string) tea.Cmd {
	return func() tea.Msg {
		return launchResultMsg{app: name, ok: src.LaunchApp(name)}
	}
}

func statusTick() tea.Cmd {
	return tea.Tick(StatusRefreshInterval, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTable()
		return m, nil

	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.setStatus(msg.err.Error(), false)
			return m, nil
		}
		m.err = nil
		m.info = msg.info
		m.tabs = msg.tabs
		if m.activeTab >= len(m.tabs) {
			m.activeTab = 0
		}
		m.refreshRows()
		return m, nil

	case launchResultMsg:
		if msg.ok {
			m.setStatus("launched "+msg.app, true)
		} else {
			m.setStatus("failed to launch "+msg.app, false)
		}
		return m, nil

	case statusTickMsg:
		return m, statusTick()

	case checksLoadedMsg:
		if m.health != nil {
			m.health.setGroups(msg.groups)
		}
		return m, nil

	case spinner.TickMsg:
		if m.health == nil || !m.health.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.health.spinner, cmd = m.health.spinner.Update(msg)
		return m, cmd

	case error:
		m.err = msg
		return m, nil
	}

	return m, nil
}

// handleKeyMsg processes key events.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC, key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case m.health != nil && key.Matches(msg, keys.Health):
		m.showHealth = !m.showHealth
		if m.showHealth {
			return m, m.health.start()
		}
		return m, nil
	}

	if m.showHealth {
		return m.handleHealthKey(msg)
	}

	switch {
	case key.Matches(msg, keys.NextTab):
		if len(m.tabs) == 0 {
			return m, nil
		}
		return m.switchTab((m.activeTab + 1) % len(m.tabs))

	case key.Matches(msg, keys.PrevTab):
		if len(m.tabs) == 0 {
			return m, nil
		}
		idx := m.activeTab - 1
		if idx < 0 {
			idx = len(m.tabs) - 1
		}
		return m.switchTab(idx)

	case key.Matches(msg, keys.Reload):
		m.loading = true
		return m, loadCatalog(m.src, true)

	case key.Matches(msg, keys.Details):
		m.showDetails = !m.showDetails
		m.resizeTable()
		return m, nil

	case key.Matches(msg, keys.Launch):
		app, ok := m.SelectedApp()
		if !ok {
			return m, nil
		}
		return m, launchApp(m.src, app.Name)
	}

	if idx, ok := tabShortcut(msg); ok {
		return m.switchTab(idx)
	}

	// Forward navigation to the table
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// switchTab changes the active tab.
func (m Model) switchTab(idx int) (tea.Model, tea.Cmd) {
	if idx >= 0 && idx < len(m.tabs) && idx != m.activeTab {
		m.activeTab = idx
		m.refreshRows()
	}
	return m, nil
}

func (m *Model) setStatus(text string, ok bool) {
	m.status = Status{Text: text, OK: ok, At: time.Now()}
}

// refreshRows loads the active tab's apps into the table.
func (m *Model) refreshRows() {
	var apps []bridge.AppView
	if tab, ok := m.currentTab(); ok {
		apps = tab.Apps
	}
	m.table.SetRows(appRows(apps))
	m.table.SetCursor(0)
}

func (m *Model) resizeTable() {
	if m.width == 0 {
		return
	}
	h := m.contentHeight() - 1
	if m.showDetails {
		h -= detailsHeight
	}
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
	m.table.SetColumns(appColumns(m.width))
	m.table.SetWidth(m.width)
}

func (m Model) contentHeight() int {
	return m.height - headerHeight - footerHeight
}

func (m Model) currentTab() (Tab, bool) {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return Tab{}, false
	}
	return m.tabs[m.activeTab], true
}

// SelectedApp returns the app under the cursor.
func (m Model) SelectedApp() (bridge.AppView, bool) {
	tab, ok := m.currentTab()
	if !ok {
		return bridge.AppView{}, false
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(tab.Apps) {
		return bridge.AppView{}, false
	}
	return tab.Apps[idx], true
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	header := renderHeader(m.info, m.tabs, m.activeTab, m.width)
	content := m.renderContent()
	footer := renderFooter(m.keyBindings(), m.status, m.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// renderContent renders the active tab's app table.
func (m Model) renderContent() string {
	var body string
	tab, ok := m.currentTab()
	switch {
	case m.showHealth:
		body = m.health.view(m.width)
	case m.loading && len(m.tabs) == 0:
		body = DimStyle.Render("Loading catalog...")
	case m.err != nil && len(m.tabs) == 0:
		body = ErrorStyle.Render("Error: " + m.err.Error())
	case !ok:
		body = DimStyle.Render("No categories.")
	case tab.Broken:
		body = ErrorStyle.Render("Category '" + tab.Name + "' lists an app that is not registered.")
	case len(tab.Apps) == 0:
		body = DimStyle.Render("No apps in " + tab.Name + ".")
	default:
		body = m.table.View()
		if m.showDetails {
			if app, ok := m.SelectedApp(); ok {
				body = lipgloss.JoinVertical(lipgloss.Left, body, renderDetails(app, m.width))
			}
		}
	}

	return lipgloss.NewStyle().
		Height(m.contentHeight()).
		Width(m.width).
		Render(body)
}

// keyBindings returns the context-sensitive bindings for the footer.
func (m Model) keyBindings() []string {
	if m.showHealth {
		return []string{"[↑/↓] navigate", "[enter] fix", "[r] recheck", "[d] close"}
	}
	bindings := []string{"[enter] launch", "[r] reload"}
	if m.health != nil {
		bindings = append(bindings, "[d] health")
	}
	if m.showDetails {
		return append(bindings, "[?] hide details")
	}
	return append(bindings, "[?] details")
}

// ActiveTab returns the currently active tab index.
func (m Model) ActiveTab() int {
	return m.activeTab
}

// SetActiveTab sets the active tab by index.
func (m *Model) SetActiveTab(idx int) {
	if idx >= 0 && idx < len(m.tabs) {
		m.activeTab = idx
		m.refreshRows()
	}
}

// Tabs returns the loaded tabs.
func (m Model) Tabs() []Tab {
	return m.tabs
}

// Status returns the last footer status.
func (m Model) Status() Status {
	return m.status
}

// HealthVisible reports whether the health panel is shown.
func (m Model) HealthVisible() bool {
	return m.showHealth
}

// Error returns the last error.
func (m Model) Error() error {
	return m.err
}

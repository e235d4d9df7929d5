// Package tui provides the Bubble Tea tracker interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/arenatrack/internal/ddragon"
	"github.com/verte-zerg/arenatrack/internal/model"
	"github.com/verte-zerg/arenatrack/internal/tracker"
)

const (
	tabChampions = iota
	tabStats
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
	modalTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// RosterLoader fetches the session roster.
type RosterLoader func(ctx context.Context) (ddragon.Result, error)

type rosterLoadedMsg struct {
	seq    int
	result ddragon.Result
	err    error
}

// Model implements the Bubble Tea tracker UI.
type Model struct {
	tracker *tracker.Tracker
	load    RosterLoader

	loadSeq int
	loading bool
	loadErr error
	version string
	cached  bool

	tabs      []string
	activeTab int
	statsView viewport.Model

	width  int
	height int

	filter     model.Filter
	search     textinput.Model
	searchMode bool
	visible    []model.Champion
	cursor     int
	offset     int

	snapshot      tracker.Snapshot
	showMilestone bool
	confirmReset  bool
}

// NewModel constructs the tracker UI. The roster is loaded asynchronously by Init.
func NewModel(tr *tracker.Tracker, load RosterLoader) *Model {
	m := &Model{
		tracker:   tr,
		load:      load,
		tabs:      []string{"Champions", "Stats"},
		statsView: viewport.New(0, 0),
	}
	m.search = textinput.New()
	m.search.Prompt = "Search: "
	m.search.Placeholder = "champion name"
	m.search.Cursor.SetMode(cursor.CursorBlink)
	m.refresh()
	return m
}

// Init implements tea.Model. A milestone reached before the last shutdown is
// celebrated here, before the roster arrives.
func (m *Model) Init() tea.Cmd {
	if m.tracker.Evaluate(context.Background()) == tracker.MilestoneShow {
		m.showMilestone = true
		m.refresh()
	}
	return m.startLoad()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case rosterLoadedMsg:
		m.applyLoad(msg)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.showMilestone {
			m.showMilestone = false
			return m, nil
		}
		if m.confirmReset {
			return m.updateConfirm(msg)
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showMilestone {
		return m.renderMilestoneModal()
	}
	if m.confirmReset {
		return m.renderConfirmModal()
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) startLoad() tea.Cmd {
	m.loadSeq++
	m.loading = true
	m.loadErr = nil
	seq := m.loadSeq
	load := m.load
	return func() tea.Msg {
		res, err := load(context.Background())
		return rosterLoadedMsg{seq: seq, result: res, err: err}
	}
}

func (m *Model) applyLoad(msg rosterLoadedMsg) {
	if msg.seq != m.loadSeq {
		slog.Debug("ignoring stale roster load", "seq", msg.seq, "current", m.loadSeq)
		return
	}
	m.loading = false
	if msg.err != nil {
		m.loadErr = msg.err
		slog.Error("failed to load roster", "err", msg.err)
		return
	}
	m.loadErr = nil
	m.version = msg.result.Version
	m.cached = msg.result.Cached
	m.tracker.SetRoster(msg.result.Champions)
	m.refresh()
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.activeTab = (m.activeTab + 1) % len(m.tabs)
		return m, nil
	case "shift+tab":
		m.activeTab = (m.activeTab + len(m.tabs) - 1) % len(m.tabs)
		return m, nil
	case "r":
		if m.loadErr != nil && !m.loading {
			return m, m.startLoad()
		}
		return m, nil
	case "R":
		m.confirmReset = true
		return m, nil
	}
	if m.activeTab == tabStats {
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "/":
		m.searchMode = true
		return m, m.search.Focus()
	case "c":
		m.filter.Role = nextOption(roleOptions(), m.filter.Role)
		m.refresh()
	case "f":
		m.filter.Completion = nextOption(completionOptions, m.filter.Completion)
		m.refresh()
	case "s":
		next := tracker.GridMedium
		if m.tracker.GridSize() == tracker.GridMedium {
			next = tracker.GridSmall
		}
		m.tracker.SetGridSize(context.Background(), next)
		m.clampCursor()
	case " ", "enter":
		m.toggleSelected()
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-m.columns())
	case "down", "j":
		m.moveCursor(m.columns())
	case "home", "g":
		m.cursor = 0
		m.clampCursor()
	case "end", "G":
		m.cursor = len(m.visible) - 1
		m.clampCursor()
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.SetValue("")
		m.endSearch()
		return m, nil
	case tea.KeyEnter:
		m.endSearch()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter.Search = m.search.Value()
	m.refresh()
	return m, cmd
}

func (m *Model) endSearch() {
	m.searchMode = false
	m.search.Blur()
	m.filter.Search = m.search.Value()
	m.refresh()
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmReset = false
	if msg.String() != "y" {
		return m, nil
	}
	m.apply(m.tracker.Reset(context.Background()))
	return m, nil
}

func (m *Model) toggleSelected() {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return
	}
	m.apply(m.tracker.Toggle(context.Background(), m.visible[m.cursor].ID))
}

func (m *Model) apply(up tracker.Update) {
	switch up.Milestone {
	case tracker.MilestoneShow:
		m.showMilestone = true
	case tracker.MilestoneHide:
		m.showMilestone = false
	}
	m.refresh()
}

// refresh recomputes the visible list and all statistics.
func (m *Model) refresh() {
	m.visible = m.tracker.Filter(m.filter)
	m.snapshot = m.tracker.Snapshot()
	m.clampCursor()
	m.renderStatsContent()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) columns() int {
	return gridColumns(m.width, m.tracker.GridSize())
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.statsView.Width = m.width
	m.statsView.Height = bodyHeight
	m.search.Width = maxInt(10, m.width-lipgloss.Width(m.search.Prompt)-2)
	m.renderStatsContent()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	headerHeight = tabsHeight + 2
	footerHeight = 1
	if m.loadErr != nil {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) renderStatsContent() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.statsView.SetContent(renderStats(m.snapshot, m.tracker.Target(), width))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	lines := []string{
		padLines(m.renderTabs(), m.width),
		progressLine(m.snapshot, m.tracker.Target()),
		m.renderFilterLine(),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFilterLine() string {
	if m.searchMode {
		return m.search.View()
	}
	search := m.filter.Search
	if search == "" {
		search = "-"
	}
	role := m.filter.Role
	if role == "" {
		role = "all"
	}
	status := m.filter.Completion
	if status == "" {
		status = "all"
	}
	line := fmt.Sprintf("Search: %s  Role: %s  Status: %s  Showing %d", search, role, status, len(m.visible))
	if m.version != "" {
		line += "  Patch " + m.version
	}
	if m.cached {
		line += " (cached)"
	}
	return headerStyle.Render(truncateLine(line, m.width))
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabStats {
		return m.statsView.View()
	}
	switch {
	case m.loading && len(m.tracker.Roster()) == 0:
		return "Loading champions..."
	case m.loadErr != nil && len(m.tracker.Roster()) == 0:
		return errorStyle.Render("Could not load champions.")
	case len(m.visible) == 0:
		return "No champions match the current filters."
	}
	cols := m.columns()
	m.offset = scrollOffset(m.cursor/cols, m.offset, height)
	return renderGrid(m.visible, m.tracker.Completions(), m.cursor, cols, m.tracker.GridSize(), m.offset, height)
}

func (m *Model) renderFooter() string {
	help := "Move: arrows  Toggle: space  Search: /  Role: c  Status: f  Size: s  Reset: R  Tabs: tab  Quit: q"
	if m.activeTab == tabStats {
		help = "Scroll: up/down/pgup/pgdn  Reset: R  Tabs: tab  Quit: q"
	}
	if m.searchMode {
		help = "enter: apply  esc: clear"
	}
	footer := headerStyle.Render(truncateLine(help, m.width))
	if m.loadErr != nil {
		footer += "\n" + errorStyle.Render(truncateLine(fmt.Sprintf("Failed to load roster: %v (r to retry)", m.loadErr), m.width))
	}
	return footer
}

func (m *Model) renderMilestoneModal() string {
	body := []string{
		modalTitleStyle.Render("ARENA GOD"),
		"",
		fmt.Sprintf("You have won Arena with %d different champions.", m.tracker.Target()),
		headerStyle.Render("Press any key to continue"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderConfirmModal() string {
	body := []string{
		modalTitleStyle.Render("Reset progress"),
		"",
		fmt.Sprintf("Clear all %d recorded wins?", m.snapshot.Progress.Completed),
		headerStyle.Render("y: reset  any other key: cancel"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

var completionOptions = []string{model.CompletionAll, model.CompletionWon, model.CompletionNotWon}

func roleOptions() []string {
	return append([]string{""}, model.Categories...)
}

func nextOption(options []string, current string) string {
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

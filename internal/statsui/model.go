// Package statsui provides the Bubble Tea progress interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kotobadev/kotoba/internal/engine"
	"github.com/kotobadev/kotoba/internal/model"
	"github.com/kotobadev/kotoba/internal/progress"
)

const (
	tabOverview = iota
	tabWords
	tabProblems
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
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Tier filter cycle for the words tab; empty means all tiers.
var tierCycle = []string{"", "unseen", "struggling", "learning", "confident", "mastered"}

var sortCycle = []model.WordSort{
	model.SortAccuracyAsc,
	model.SortAccuracyDesc,
	model.SortAttemptsDesc,
	model.SortAttemptsAsc,
	model.SortKey,
}

// Model implements the Bubble Tea progress UI.
type Model struct {
	engine *engine.Engine

	tabs      []string
	activeTab int

	overview  viewport.Model
	problems  viewport.Model
	wordTable table.Model

	query      model.WordQuery
	tierIndex  int
	sortIndex  int
	matchTotal int
	shownRows  int

	filterMode  bool
	filterInput textinput.Model

	width  int
	height int
	errMsg string
}

// NewModel constructs a progress UI model over an initialized engine.
func NewModel(eng *engine.Engine) *Model {
	m := &Model{
		engine: eng,
		tabs:   []string{"Overview", "Words", "Problems"},
		query:  model.WordQuery{Sort: sortCycle[0]},
	}
	m.overview = viewport.New(80, 20)
	m.problems = viewport.New(80, 20)
	m.filterInput = textinput.New()
	m.filterInput.Placeholder = "search word or meaning"
	m.filterInput.CharLimit = 64
	m.initWordTable()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			if m.activeTab == tabWords {
				m.filterMode = true
				m.filterInput.SetValue(m.query.Search)
				m.filterInput.Focus()
				return m, textinput.Blink
			}
			return m, nil
		case "t":
			if m.activeTab == tabWords {
				m.tierIndex = (m.tierIndex + 1) % len(tierCycle)
				m.query.Tier = tierCycle[m.tierIndex]
				m.refresh()
			}
			return m, nil
		case "s":
			if m.activeTab == tabWords {
				m.sortIndex = (m.sortIndex + 1) % len(sortCycle)
				m.query.Sort = sortCycle[m.sortIndex]
				m.refresh()
			}
			return m, nil
		}
	}
	return m.updateActiveView(msg)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case "enter":
		m.filterMode = false
		m.filterInput.Blur()
		m.query.Search = m.filterInput.Value()
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabWords:
		m.wordTable, cmd = m.wordTable.Update(msg)
	case tabProblems:
		m.problems, cmd = m.problems.Update(msg)
	default:
		m.overview, cmd = m.overview.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderNav())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	switch m.activeTab {
	case tabWords:
		if m.filterMode {
			b.WriteString(m.filterInput.View())
			b.WriteString("\n")
		}
		b.WriteString(m.wordTable.View())
		b.WriteString("\n")
		b.WriteString(m.renderWordStatus())
	case tabProblems:
		b.WriteString(m.problems.View())
	default:
		b.WriteString(m.overview.View())
	}
	return b.String()
}

func (m *Model) renderNav() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
			continue
		}
		parts = append(parts, inactiveNavStyle.Render(tab))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Model) renderWordStatus() string {
	segments := []string{
		fmt.Sprintf("%d of %d words", m.shownRows, m.matchTotal),
		fmt.Sprintf("sort: %s", m.query.Sort),
	}
	if m.query.Tier != "" {
		segments = append(segments, fmt.Sprintf("tier: %s", m.query.Tier))
	}
	if m.query.Search != "" {
		segments = append(segments, fmt.Sprintf("search: %q", m.query.Search))
	}
	segments = append(segments, "/ search · t tier · s sort")
	return statusStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
}

func (m *Model) initWordTable() {
	m.wordTable = table.New(
		table.WithColumns(wordColumns(80)),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	m.wordTable.SetStyles(styles)
}

func wordColumns(width int) []table.Column {
	flexible := width - 34
	if flexible < 20 {
		flexible = 20
	}
	return []table.Column{
		{Title: "Word", Width: flexible / 4},
		{Title: "Reading", Width: flexible / 4},
		{Title: "English", Width: flexible / 2},
		{Title: "Tier", Width: 10},
		{Title: "Acc", Width: 5},
		{Title: "Att", Width: 5},
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	contentHeight := m.height - 5
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.overview.Width = m.width
	m.overview.Height = contentHeight
	m.problems.Width = m.width
	m.problems.Height = contentHeight
	m.wordTable.SetColumns(wordColumns(m.width))
	m.wordTable.SetHeight(contentHeight - 1)
}

func (m *Model) refresh() {
	vocab := m.engine.Vocab()
	ledger := m.engine.LedgerSnapshot()

	sessions, err := m.engine.Sessions(context.Background())
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load session history: %v", err)
		sessions = nil
	}

	var overviewBuf bytes.Buffer
	ov := progress.BuildOverview(vocab, ledger)
	if err := progress.RenderOverview(&overviewBuf, ov, m.engine.Streak(), progress.DailySeries(sessions)); err != nil {
		m.errMsg = fmt.Sprintf("failed to render overview: %v", err)
	}
	m.overview.SetContent(overviewBuf.String())

	var problemsBuf bytes.Buffer
	if err := progress.RenderProblems(&problemsBuf, progress.ProblemWords(vocab, ledger)); err != nil {
		m.errMsg = fmt.Sprintf("failed to render problems: %v", err)
	}
	m.problems.SetContent(problemsBuf.String())

	rows, total, err := progress.QueryWords(vocab, ledger, m.query)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to query words: %v", err)
		return
	}
	m.matchTotal = total
	m.shownRows = len(rows)
	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, table.Row{
			row.Item.Kanji,
			row.Item.Reading,
			row.Item.English,
			row.Tier.String(),
			fmt.Sprintf("%.0f%%", row.Record.Accuracy()*100),
			fmt.Sprintf("%d", row.Record.Attempts()),
		})
	}
	m.wordTable.SetRows(tableRows)
}

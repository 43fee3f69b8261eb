// Package tui provides the Bubble Tea flashcard interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kotobadev/kotoba/internal/engine"
	"github.com/kotobadev/kotoba/internal/model"
)

type styles struct {
	front  lipgloss.Style
	back   lipgloss.Style
	label  lipgloss.Style
	detail lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
	footer lipgloss.Style
	hint   lipgloss.Style
}

func newStyles(theme string) styles {
	if theme == "light" {
		return styles{
			front:  lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Bold(true),
			back:   lipgloss.NewStyle().Foreground(lipgloss.Color("#2D2D2D")),
			label:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
			detail: lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C3C")),
			good:   lipgloss.NewStyle().Foreground(lipgloss.Color("#1F7A3D")),
			bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("#B02A30")),
			footer: lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
			hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")),
		}
	}
	return styles{
		front:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
		back:   lipgloss.NewStyle().Foreground(lipgloss.Color("#D8D8D8")),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		detail: lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")),
		good:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6FCF7C")),
		bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5E5E")),
	}
}

// Model implements the Bubble Tea flashcard UI.
type Model struct {
	engine *engine.Engine
	cfg    model.Config
	styles styles

	width  int
	height int

	current  model.VocabItem
	revealed bool
	notice   string
	errMsg   string
}

// NewModel constructs a flashcard TUI model and draws the first card.
func NewModel(eng *engine.Engine, cfg model.Config) *Model {
	m := &Model{
		engine: eng,
		cfg:    cfg,
		styles: newStyles(cfg.Theme),
	}
	m.nextCard()
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
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.engine.Finish(context.Background())
			return m, tea.Quit
		case " ", "enter":
			if !m.revealed {
				m.revealed = true
			}
			return m, nil
		case "y", "right":
			if m.revealed {
				m.judge(true)
			}
			return m, nil
		case "n", "left":
			if m.revealed {
				m.judge(false)
			}
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var lines []string
	if m.notice != "" {
		lines = append(lines, m.notice, "")
	}
	lines = append(lines, m.renderCard()...)
	content := strings.Join(lines, "\n")
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderCard() []string {
	front := m.current.Kanji
	if m.cfg.Direction == model.DirectionENJP {
		front = m.current.English
	}
	lines := []string{m.styles.front.Render(front)}
	if !m.revealed {
		lines = append(lines, "", m.styles.hint.Render("space to reveal"))
		return lines
	}

	lines = append(lines, "")
	if m.cfg.Direction == model.DirectionENJP {
		lines = append(lines, m.styles.back.Render(m.current.Kanji))
	} else {
		lines = append(lines, m.styles.back.Render(m.current.English))
	}
	if m.current.Reading != "" {
		lines = append(lines, m.detailLine("Reading", m.current.Reading))
	}
	if m.current.PartOfSpeech != "" {
		lines = append(lines, m.detailLine("Part of speech", m.current.PartOfSpeech))
	}
	for _, form := range []struct{ label, value string }{
		{"Polite", m.current.Conjugations.Polite},
		{"Te-form", m.current.Conjugations.Te},
		{"Negative", m.current.Conjugations.Negative},
		{"Past", m.current.Conjugations.Past},
	} {
		if form.value == "" || form.value == model.NotApplicable {
			continue
		}
		lines = append(lines, m.detailLine(form.label, form.value))
	}
	if m.current.Notes != "" {
		lines = append(lines, m.detailLine("Notes", m.current.Notes))
	}
	lines = append(lines, "", m.styles.hint.Render("y correct · n incorrect"))
	return lines
}

func (m *Model) detailLine(label, value string) string {
	return m.styles.label.Render(label+": ") + m.styles.detail.Render(value)
}

func (m *Model) renderFooter() string {
	correct, incorrect := m.engine.SessionTally()
	segments := []string{
		fmt.Sprintf("Session %d✓ %d✗", correct, incorrect),
		fmt.Sprintf("Streak %d day(s)", m.engine.Streak().Current),
		m.cfg.Mode,
	}
	if m.errMsg != "" {
		segments = append(segments, m.errMsg)
	}
	return m.styles.footer.Render(strings.Join(segments, "  "))
}

func (m *Model) judge(correct bool) {
	res, err := m.engine.Answer(context.Background(), m.current.Kanji, correct)
	if err != nil {
		// Unknown keys are ignorable; nothing to crash over.
		logErrf("failed to record answer: %v\n", err)
		m.nextCard()
		return
	}
	m.notice = m.renderNotice(res)
	m.nextCard()
}

func (m *Model) renderNotice(res engine.AnswerResult) string {
	mark := m.styles.good.Render("✓")
	if !res.Correct {
		mark = m.styles.bad.Render("✗")
	}
	notice := fmt.Sprintf("%s %s", mark, res.Key)
	if res.TierChanged {
		notice += m.styles.label.Render(fmt.Sprintf("  %s → %s", res.PreviousTier, res.Tier))
	}
	if res.StreakExtended && res.Streak.Current > 1 {
		notice += m.styles.label.Render(fmt.Sprintf("  streak %d", res.Streak.Current))
	}
	return notice
}

func (m *Model) nextCard() {
	card, err := m.engine.NextCard(m.cfg.Mode)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to draw card: %v", err)
		return
	}
	m.current = card
	m.revealed = false
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

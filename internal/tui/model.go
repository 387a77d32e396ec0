package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keydrill/internal/keymap"
	"github.com/verte-zerg/keydrill/internal/lesson"
	"github.com/verte-zerg/keydrill/internal/stats"
)

const (
	committedShown = 8
	remainingShown = 24
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	committedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	keyStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	pressedKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6E6E6E")).Padding(0, 1).Align(lipgloss.Center)
	cardLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

type keyMap struct {
	EndLesson key.Binding
	Next      key.Binding
	Finish    key.Binding
	Quit      key.Binding

	reporting bool
	last      bool
}

func newKeyMap() keyMap {
	return keyMap{
		EndLesson: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "end lesson")),
		Next:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next lesson")),
		Finish:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "finish")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	if !k.reporting {
		return []key.Binding{k.EndLesson, k.Quit}
	}
	next := k.Next
	if k.last {
		next.SetHelp("enter", "finish")
		return []key.Binding{next, k.Quit}
	}
	return []key.Binding{next, k.Finish, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model renders the state pushed by a lesson runner and feeds key presses
// back to it through a KeyQueue.
type Model struct {
	layout *keymap.Layout
	queue  *KeyQueue

	frame     lesson.Frame
	hasFrame  bool
	report    lesson.Report
	reporting bool
	notice    string
	quitting  bool
	err       error

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel builds a model drawing the keyboard of the target layout.
func NewModel(layout *keymap.Layout, queue *KeyQueue) *Model {
	return &Model{
		layout: layout,
		queue:  queue,
		keys:   newKeyMap(),
		help:   help.New(),
	}
}

// Err returns the error the runner finished with, if any.
func (m *Model) Err() error {
	return m.err
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
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
		}
		m.queue.Push(msg)
		return m, nil
	case frameMsg:
		m.frame = lesson.Frame(msg)
		m.hasFrame = true
		m.reporting = false
		m.keys.reporting = false
		return m, nil
	case reportMsg:
		m.report = lesson.Report(msg)
		m.reporting = true
		m.keys.reporting = true
		m.keys.last = m.report.Last()
		return m, nil
	case noticeMsg:
		m.notice = string(msg)
		return m, nil
	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var body string
	switch {
	case m.reporting:
		body = m.renderReport()
	case m.hasFrame:
		body = m.renderTyping()
	default:
		return ""
	}
	if m.notice != "" {
		body = noticeStyle.Render(m.notice) + "\n\n" + body
	}
	footer := m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyHeight := m.height - 1
	content := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return content + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	width := int(float64(m.width) * 0.70)
	if width < 1 {
		width = 1
	}
	return width
}

func (m *Model) renderTyping() string {
	f := trimFrame(m.frame)
	title := titleStyle.Render(fmt.Sprintf("Lesson %d/%d · %s", f.Position+1, f.Lessons, f.Lesson.Name))
	progress := cardLabelStyle.Render(fmt.Sprintf("word %d of %d", f.Finished+1, f.Total))

	width := m.contentWidth()
	text := wrapStyledRunes(buildStyledRunes(f), width)
	if width > 0 {
		text = lipgloss.NewStyle().Width(width).Render(text)
	}
	keyboard := renderKeyboard(m.layout, f.PressedKey, f.HasPressedKey)
	return lipgloss.JoinVertical(lipgloss.Center, title, progress, "", text, "", keyboard)
}

func (m *Model) renderReport() string {
	r := m.report
	res := r.Results
	heading := fmt.Sprintf("Lesson %d/%d · %s", r.Position+1, r.Lessons, r.Lesson.Name)
	if r.Cancelled {
		heading += " (stopped)"
	}

	cards := []string{
		renderCard("wpm", fmt.Sprintf("%.1f", res.WPM())),
		renderCard("typos", strconv.Itoa(res.TypoCount())),
		renderCard("accuracy", fmt.Sprintf("%.1f%%", res.Accuracy()*100)),
		renderCard("words typed", strconv.Itoa(res.WordCount())),
		renderCard("characters typed", strconv.Itoa(res.CharCount())),
		renderCard("total seconds", fmt.Sprintf("%.1f", res.DurationSecs())),
	}
	parts := []string{titleStyle.Render(heading), "", lipgloss.JoinHorizontal(lipgloss.Top, cards...)}

	if durations := res.NormalisedWordDurations(); len(durations) > 0 {
		width := m.contentWidth()
		if width == 0 {
			width = len(durations)
		}
		spark := stats.Sparkline(stats.Fit(durations, width))
		parts = append(parts, renderCard("seconds per character, by word", spark))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func renderCard(label, value string) string {
	return cardStyle.Render(cardLabelStyle.Render(label) + "\n" + value)
}

// trimFrame keeps the words around the cursor.
func trimFrame(f lesson.Frame) lesson.Frame {
	if n := len(f.Committed); n > committedShown {
		f.Committed = f.Committed[n-committedShown:]
	}
	if len(f.Remaining) > remainingShown {
		f.Remaining = f.Remaining[:remainingShown]
	}
	return f
}

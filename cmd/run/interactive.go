package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/sharedptr/internal/playground"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

// groupColors tints handles by alias group so sharing is visible at a glance.
var groupColors = []lipgloss.Color{"#FFB86C", "#8BE9FD", "#FF79C6", "#F1FA8C", "#BD93F9", "#50FA7B"}

type interactiveModel struct {
	err      error
	session  *playground.Session
	result   string
	lastCmd  string
	input    textinput.Model
	showHelp bool
}

func newInteractiveModel(log *zap.Logger) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "new sp1 42"
	ti.Prompt = "> "
	ti.Width = 40
	ti.Focus()

	return &interactiveModel{
		session: playground.NewSession(log),
		input:   ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.session.Close()
			return m, tea.Quit

		case "f1":
			m.showHelp = !m.showHelp
			return m, nil

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				m.session.Close()
				return m, tea.Quit
			}
			m.lastCmd = line
			m.result, m.err = m.session.Exec(line)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Shared Handle Playground"))
	b.WriteString("\n\n")

	handles := m.renderHandles()
	events := m.renderEvents()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(handles),
		" ",
		paneStyle.Render(events),
	))
	b.WriteString("\n\n")

	if m.lastCmd != "" {
		b.WriteString(helpStyle.Render(m.lastCmd))
		b.WriteString("\n")
		switch {
		case m.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		case m.result != "":
			b.WriteString(resultStyle.Render(m.result))
		default:
			b.WriteString(resultStyle.Render("ok"))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(helpStyle.Render(playground.Usage))
		b.WriteString("\n\n")
	}
	b.WriteString(helpStyle.Render("enter run • f1 commands • esc quit"))

	return b.String()
}

func (m *interactiveModel) renderHandles() string {
	rows := m.session.Snapshot()
	if len(rows) == 0 {
		return emptyStyle.Render("no handles yet")
	}

	var b strings.Builder
	b.WriteString("Handles\n")
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-8s", r.Name)))
		b.WriteString(countStyle.Render(fmt.Sprintf(" refs=%d ", r.Refs)))
		if r.Group == 0 {
			b.WriteString(emptyStyle.Render("empty"))
			continue
		}
		c := groupColors[(r.Group-1)%len(groupColors)]
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render(fmt.Sprintf("%s  #%d", r.Value, r.Group)))
	}
	return b.String()
}

func (m *interactiveModel) renderEvents() string {
	history := m.session.History()
	if len(history) == 0 {
		return emptyStyle.Render("no events yet")
	}
	return "Events\n\n" + helpStyle.Render(strings.Join(history, "\n"))
}

func runInteractive(log *zap.Logger) error {
	p := tea.NewProgram(newInteractiveModel(log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

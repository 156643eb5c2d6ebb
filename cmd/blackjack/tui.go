package main

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// logLines is how much command output stays on screen
const logLines = 14

// tickMsg asks the table to advance by one frame
type tickMsg time.Time

// tableModel is the Bubble Tea model for the interactive table. Frame ticks
// drive the session clock while the dealer works; typed commands go through
// the prompt.
type tableModel struct {
	ctx    context.Context
	prompt *prompt
	logger *log.Logger
	frame  time.Duration

	input    textinput.Model
	output   bytes.Buffer
	log      []string
	quitting bool
}

func newTableModel(ctx context.Context, p *prompt, frame time.Duration, logger *log.Logger) *tableModel {
	ti := textinput.New()
	ti.Placeholder = "bet 10, deal, hit, stand, double, split, surrender (? for help)"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 64
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	m := &tableModel{
		ctx:    ctx,
		prompt: p,
		logger: logger.WithPrefix("tui"),
		frame:  frame,
		input:  ti,
	}
	p.out = &m.output
	return m
}

// Init starts the cursor blink and the frame ticker
func (m *tableModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

func (m *tableModel) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles frame ticks and key presses
func (m *tableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.prompt.session.WaitingForInput() {
			if err := m.prompt.session.Tick(); err != nil {
				m.addLog("error: " + err.Error())
			}
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the typed command
func (m *tableModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}
	m.logger.Debug("Command", "line", line)

	quit, err := m.prompt.exec(m.ctx, line)
	m.addLog("> " + line)
	for _, l := range strings.Split(strings.TrimRight(m.output.String(), "\n"), "\n") {
		if l != "" {
			m.addLog(l)
		}
	}
	m.output.Reset()
	if err != nil {
		m.addLog("error: " + err.Error())
	}
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *tableModel) addLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > logLines {
		m.log = m.log[len(m.log)-logLines:]
	}
}

// View renders the table above the command output and the input line
func (m *tableModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.prompt.screen())
	b.WriteString("\n\n")
	for _, l := range m.log {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	return b.String()
}

// Package tui is a full-screen front end for a training session. It feeds
// each entered line to the shell and shows the shell's output in a
// scrolling log beside a sidebar with the public table state.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/hmtavares/dod-trainer/internal/deck"
	"github.com/hmtavares/dod-trainer/internal/game"
	"github.com/hmtavares/dod-trainer/internal/gameid"
	"github.com/hmtavares/dod-trainer/internal/shell"
)

// Model is the Bubble Tea model for a session
type Model struct {
	shell   *shell.Shell
	session *game.Session
	logger  *log.Logger
	out     *bytes.Buffer

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	gameLog     []string
	quitting    bool
	focusedPane int // 0 = log, 1 = input
	err         error

	// Dimensions
	width       int
	height      int
	initialized bool
}

// New creates a model around a dealt session. The shell is started and its
// opening output becomes the first log entries.
func New(session *game.Session, opts shell.Options) (*Model, error) {
	out := &bytes.Buffer{}
	opts.Out = out
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "ask <player> <start> <end> [suit], or 'help'"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		shell:       shell.New(session, opts),
		session:     session,
		logger:      opts.Logger.WithPrefix("tui"),
		out:         out,
		logViewport: vp,
		input:       ti,
		focusedPane: 1,
	}

	if err := m.shell.Start(); err != nil {
		return nil, err
	}
	m.flush()
	return m, nil
}

// Run shows the model full screen until the player quits or ctx is done.
// It returns the first unrecoverable session error, if any.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				line := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				if !m.execute(line) {
					m.quitting = true
					return m, tea.Quit
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// execute runs one line through the shell and reports whether to keep going
func (m *Model) execute(line string) bool {
	if line == "" {
		return true
	}
	m.AddLogEntry(m.shell.Prompt() + line)

	cont, err := m.shell.Execute(line)
	if err != nil {
		if !shell.IsRecoverable(err) {
			m.logger.Error("Session aborted", "error", err)
			m.err = err
			m.flush()
			return false
		}
		m.shell.PrintError(err)
	}
	m.flush()
	return cont
}

// flush moves pending shell output into the log
func (m *Model) flush() {
	if m.out.Len() == 0 {
		return
	}
	text := strings.TrimRight(m.out.String(), "\n")
	m.out.Reset()
	for _, line := range strings.Split(text, "\n") {
		m.AddLogEntry(line)
	}
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	inputContent := m.renderInputPane()
	inputHeight := lipgloss.Height(inputContent)
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(max(m.width-2, 1)).
		Height(max(inputHeight, 1))
	if m.focusedPane == 1 {
		inputStyle = inputStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	inputPane := inputStyle.Render(inputContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-inputHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, inputPane)
}

// renderSidebarPane shows everything player 1 is allowed to see
func (m *Model) renderSidebarPane() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" Deduce or Die "))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("game " + gameid.Short(m.session.ID())))
	b.WriteString("\n\n")

	b.WriteString(SectionStyle.Render("Question cards"))
	b.WriteString("\n  ")
	b.WriteString(QuestionStyle.Render(formatCards(m.session.QuestionCards())))
	b.WriteString("\n\n")

	b.WriteString(SectionStyle.Render("Your hand"))
	b.WriteString("\n  ")
	b.WriteString(formatCards(m.session.Human().Cards()))
	b.WriteString("\n\n")

	b.WriteString(SectionStyle.Render("Exposed"))
	b.WriteString("\n  ")
	if c, ok := m.session.Exposed(); ok {
		b.WriteString(formatCards([]deck.Card{c}))
	} else {
		b.WriteString(InfoStyle.Render("none"))
	}
	b.WriteString("\n\n")

	b.WriteString(SectionStyle.Render("Least suits"))
	b.WriteString("\n")
	for _, h := range m.session.Hands() {
		fmt.Fprintf(&b, "  Player %d: %s\n", h.Player(), h.Least())
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %d", SectionStyle.Render("Questions asked:"), len(m.session.Questions()))
	return b.String()
}

// renderInputPane renders the command input and help line
func (m *Model) renderInputPane() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.focusedPane == 0 {
		b.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		b.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return b.String()
}

// AddLogEntry appends a line to the log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns a copy of the log lines
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// Shell returns the shell behind the model
func (m *Model) Shell() *shell.Shell {
	return m.shell
}

// Err returns the error that ended the session, if any
func (m *Model) Err() error {
	return m.err
}

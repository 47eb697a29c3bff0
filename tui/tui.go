package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Backend runs console lines for the TUI.
type Backend interface {
	Title() string
	MaxLogLines() int
	Exec(line string) error
	Close()
}

// TUI is the interactive menu console.
type TUI struct {
	backend   Backend
	viewport  viewport.Model
	textInput textinput.Model
	logs      []string
	logMutex  sync.Mutex
	ready     bool
	width     int
	height    int
}

func New(backend Backend) *TUI {
	ti := textinput.New()
	ti.Placeholder = "click <slot> <button> <type>, drag, give, data, show, close"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &TUI{
		backend:   backend,
		textInput: ti,
		logs:      []string{},
	}
}

func (t *TUI) Init() tea.Cmd {
	return textinput.Blink
}

func (t *TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			t.backend.Close()
			return t, tea.Quit

		case tea.KeyEnter:
			input := strings.TrimSpace(t.textInput.Value())
			if input == "" {
				return t, nil
			}
			t.AddLog(inputStyle.Render("> " + input))
			t.refresh()
			t.textInput.SetValue("")
			return t, t.exec(input)
		}

	case tea.WindowSizeMsg:
		if !t.ready {
			t.viewport = viewport.New(msg.Width, msg.Height-3)
			t.viewport.SetContent(t.renderLogs())
			t.ready = true
		} else {
			t.viewport.Width = msg.Width
			t.viewport.Height = msg.Height - 3
		}
		t.width = msg.Width
		t.height = msg.Height
		t.textInput.Width = msg.Width - 2

	case LogMsg:
		t.AddLog(string(msg))
		t.refresh()
		return t, nil

	case execDoneMsg:
		if msg.err != nil {
			t.AddLog(errorStyle.Render(fmt.Sprintf("error: %v", msg.err)))
			t.refresh()
		}
		return t, nil
	}

	if t.ready {
		t.viewport, cmd = t.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	t.textInput, cmd = t.textInput.Update(msg)
	cmds = append(cmds, cmd)

	return t, tea.Batch(cmds...)
}

type execDoneMsg struct{ err error }

// exec runs input off the event loop, since the backend may log into the
// program while it runs.
func (t *TUI) exec(input string) tea.Cmd {
	return func() tea.Msg {
		return execDoneMsg{err: t.backend.Exec(input)}
	}
}

// refresh redraws the log, following the bottom only if it was already
// there, to prevent flickering.
func (t *TUI) refresh() {
	if !t.ready {
		return
	}
	wasAtBottom := t.viewport.AtBottom()
	t.viewport.SetContent(t.renderLogs())
	if wasAtBottom {
		t.viewport.GotoBottom()
	}
}

func (t *TUI) View() string {
	if !t.ready {
		return "Initializing..."
	}

	return fmt.Sprintf(
		"%s\n%s\n%s\n%s",
		titleStyle.Render(t.backend.Title()),
		t.viewport.View(),
		inputStyle.Render("> "+t.textInput.View()),
		helpStyle.Render("Enter: run • Ctrl+C/Esc: quit"),
	)
}

// AddLog adds a log line. It is safe to call from any goroutine.
func (t *TUI) AddLog(msg string) {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	t.logs = append(t.logs, msg)

	maxLines := t.backend.MaxLogLines()
	if maxLines > 0 && len(t.logs) > maxLines {
		t.logs = t.logs[len(t.logs)-maxLines:]
	}
}

func (t *TUI) Logs() []string {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	return append([]string(nil), t.logs...)
}

func (t *TUI) renderLogs() string {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	return strings.Join(t.logs, "\n")
}

// LogMsg is a message type for logging
type LogMsg string

// Writer is an io.Writer that sends output to the TUI
type Writer struct {
	program *tea.Program
}

func NewWriter(program *tea.Program) *Writer {
	return &Writer{program: program}
}

// Write sends each complete line of p as a LogMsg.
func (w *Writer) Write(p []byte) (n int, err error) {
	for line := range strings.SplitSeq(strings.TrimSuffix(string(p), "\n"), "\n") {
		if line != "" {
			w.program.Send(LogMsg(line))
		}
	}
	return len(p), nil
}

// Start creates a TUI program for backend, returning the program and a writer
// for logging into it.
func Start(backend Backend) (*tea.Program, io.Writer) {
	t := New(backend)
	p := tea.NewProgram(t, tea.WithAltScreen())
	return p, NewWriter(p)
}

package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-mclib/menu/pkg/trace"
)

type fakeBackend struct {
	lines    []string
	err      error
	maxLines int
	closed   bool
}

func (b *fakeBackend) Title() string    { return "menu console" }
func (b *fakeBackend) MaxLogLines() int { return b.maxLines }
func (b *fakeBackend) Close()           { b.closed = true }

func (b *fakeBackend) Exec(line string) error {
	b.lines = append(b.lines, line)
	return b.err
}

func ready(t *testing.T, b Backend) *TUI {
	t.Helper()
	ui := New(b)
	ui.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return ui
}

func enter(ui *TUI, line string) {
	ui.textInput.SetValue(line)
	_, cmd := ui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		ui.Update(cmd())
	}
}

func TestEnterRunsLine(t *testing.T) {
	b := &fakeBackend{}
	ui := ready(t, b)

	enter(ui, "  click 0 0 pickup ")
	enter(ui, "   ")

	if len(b.lines) != 1 || b.lines[0] != "click 0 0 pickup" {
		t.Errorf("executed %q, want one trimmed line", b.lines)
	}
	if ui.textInput.Value() != "" {
		t.Errorf("input not cleared: %q", ui.textInput.Value())
	}
}

func TestExecErrorIsLogged(t *testing.T) {
	b := &fakeBackend{err: errors.New("no menu open")}
	ui := ready(t, b)

	enter(ui, "show")

	logs := ui.Logs()
	if len(logs) != 2 || !strings.Contains(logs[1], "error: no menu open") {
		t.Errorf("logs = %q, want echoed input then error", logs)
	}
}

func TestLogsAreTrimmed(t *testing.T) {
	ui := ready(t, &fakeBackend{maxLines: 2})
	for _, l := range []string{"a", "b", "c"} {
		ui.Update(LogMsg(l))
	}
	if got := strings.Join(ui.Logs(), ","); got != "b,c" {
		t.Errorf("logs = %q, want b,c", got)
	}
	if !strings.Contains(ui.View(), "menu console") {
		t.Errorf("view is missing the title")
	}
}

func TestQuitClosesBackend(t *testing.T) {
	b := &fakeBackend{}
	ui := ready(t, b)
	if _, cmd := ui.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Errorf("ctrl+c returned no command")
	}
	if !b.closed {
		t.Errorf("backend not closed")
	}
}

func TestFollow(t *testing.T) {
	bus := trace.NewBus()
	var lines []string
	stop := Follow(bus, func(l string) { lines = append(lines, l) }, false)

	ref := trace.MenuRef{ID: 2, Type: "minecraft:generic_9x3"}
	trace.Publish(bus, trace.Clicked{Menu: ref, Slot: 4, Desync: true})
	trace.Publish(bus, trace.SlotChanged{Menu: ref, Slot: 4})
	stop()
	trace.Publish(bus, trace.Closed{Menu: ref})

	want := "minecraft:generic_9x3#2 click slot 4 button 0 PICKUP (state 0), desynced"
	if len(lines) != 1 || lines[0] != want {
		t.Errorf("lines = %q, want [%q]", lines, want)
	}
}

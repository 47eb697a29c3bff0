package console

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-mclib/menu/pkg/container"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
	"github.com/go-mclib/menu/pkg/netsync"
	jp "github.com/go-mclib/protocol/java_protocol"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"click 3 1 pickup", Click{Slot: 3, Button: 1, Type: menu.Pickup}},
		{"CLICK -999 0 PICKUP", Click{Slot: -999, Button: 0, Type: menu.Pickup}},
		{"click 4 0 quick_move", Click{Slot: 4, Type: menu.QuickMove}},
		{"drag single 1 2 5", Drag{Mode: menu.SingleItem, Slots: []int{1, 2, 5}}},
		{"give 0 minecraft:stone 12", Give{Slot: 0, Item: "minecraft:stone", Count: 12}},
		{"data 2 100", Data{Index: 2, Value: 100}},
		{"button 101", Button{ID: 101}},
		{"  show  ", Show{}},
		{"close", Close{}},
		{"", nil},
		{"# comment", nil},
	}
	for _, tt := range tests {
		got, err := Parse(tt.line)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.line, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.line, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line    string
		unknown bool
	}{
		{"jump", true},
		{"click 1 0", false},
		{"click x 0 pickup", false},
		{"click 1 0 wiggle", false},
		{"drag sideways 1 2", false},
		{"drag even", false},
		{"give 0 stone -1", false},
		{"data 1", false},
		{"button", false},
		{"button next", false},
	}
	for _, tt := range tests {
		_, err := Parse(tt.line)
		if err == nil {
			t.Errorf("Parse(%q) error = nil, want error", tt.line)
			continue
		}
		if got := errors.Is(err, ErrUnknownCommand); got != tt.unknown {
			t.Errorf("Parse(%q) unknown command = %v, want %v", tt.line, got, tt.unknown)
		}
	}
}

type loopback struct{ mirror *netsync.Mirror }

func (l loopback) WritePacket(p jp.Packet) error { return l.mirror.WritePacket(p) }

func newRunner(t *testing.T) (*Runner, *menu.Menu, *netsync.Mirror, *bytes.Buffer) {
	t.Helper()
	cat := item.NewCatalog(item.Def{Kind: 1, Name: "stone"})
	build := func() *menu.Menu {
		m := menu.New("test:menu", 1, cat)
		m.AddContainerSlots(container.NewSimple(4), 0, 4)
		m.AddDataSlot(menu.Standalone())
		return m
	}
	mirror := netsync.NewMirror(build(), nil)
	sess := netsync.NewSession(container.NewPlayer("alex", cat), loopback{mirror}, nil)
	m := build()
	if err := sess.Open(m); err != nil {
		t.Fatalf("Open = %v", err)
	}
	var out bytes.Buffer
	return NewRunner(sess, cat, &out), m, mirror, &out
}

func counts(items []item.Stack) []int {
	out := make([]int, len(items))
	for i, s := range items {
		out[i] = s.Count
	}
	return out
}

func TestRunScript(t *testing.T) {
	r, m, mirror, _ := newRunner(t)
	script := strings.Join([]string{
		"# split ten stone over two slots",
		"give 0 stone 10",
		"click 0 0 pickup",
		"drag even 1 2",
		"data 0 7",
	}, "\n")

	if err := r.RunScript(strings.NewReader(script)); err != nil {
		t.Fatalf("RunScript = %v", err)
	}

	want := []int{0, 5, 5, 0}
	if got := counts(m.Items()); !reflect.DeepEqual(got, want) {
		t.Errorf("menu counts = %v, want %v", got, want)
	}
	if got := counts(mirror.Items()); !reflect.DeepEqual(got, want) {
		t.Errorf("mirror counts = %v, want %v", got, want)
	}
	if !mirror.Carried().IsEmpty() {
		t.Errorf("mirror carried = %v, want empty", mirror.Carried())
	}
	if got := mirror.Data(0); got != 7 {
		t.Errorf("mirror data 0 = %d, want 7", got)
	}
	if mirror.StateID() != m.StateID() {
		t.Errorf("mirror state id = %d, want %d", mirror.StateID(), m.StateID())
	}
}

func TestRunScriptReportsLine(t *testing.T) {
	r, _, _, _ := newRunner(t)
	err := r.RunScript(strings.NewReader("show\ngive 9 stone 1\n"))
	if err == nil || !strings.HasPrefix(err.Error(), "line 2:") {
		t.Errorf("RunScript error = %v, want line 2 failure", err)
	}
}

func TestButtonIgnoredByPlainMenu(t *testing.T) {
	r, _, _, _ := newRunner(t)
	if err := r.Exec("button 1"); !errors.Is(err, ErrButtonIgnored) {
		t.Errorf("button 1 = %v, want ErrButtonIgnored", err)
	}
	if err := r.Exec("close"); err != nil {
		t.Fatalf("close = %v", err)
	}
	if err := r.Exec("button 1"); !errors.Is(err, ErrNoMenu) {
		t.Errorf("button after close = %v, want ErrNoMenu", err)
	}
}

func TestShowAndClose(t *testing.T) {
	r, m, _, out := newRunner(t)
	if err := r.Exec("give 3 1 2"); err != nil {
		t.Fatalf("give = %v", err)
	}
	if err := r.Exec("show"); err != nil {
		t.Fatalf("show = %v", err)
	}
	for _, want := range []string{"test:menu #1", "3 empty slots", "carried: empty", "data: 0"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("show output %q missing %q", out.String(), want)
		}
	}

	if err := r.Exec("close"); err != nil {
		t.Fatalf("close = %v", err)
	}
	if !m.Closed() {
		t.Errorf("menu not closed")
	}
	if err := r.Exec("show"); !errors.Is(err, ErrNoMenu) {
		t.Errorf("show after close = %v, want ErrNoMenu", err)
	}
}

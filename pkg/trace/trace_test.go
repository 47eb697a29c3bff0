package trace

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/go-mclib/menu/pkg/container"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
	"github.com/go-mclib/menu/pkg/netsync"
)

type nopSync struct{ slots int }

func (s *nopSync) SendInitialData(*menu.Menu, []item.Stack, item.Stack, []int) {}
func (s *nopSync) SendSlotChange(m *menu.Menu, _ int, _ item.Stack) {
	s.slots++
	m.IncrementStateID()
}
func (s *nopSync) SendCarriedChange(*menu.Menu, item.Stack) {}
func (s *nopSync) SendDataChange(*menu.Menu, int, int)      {}

func TestPublishByType(t *testing.T) {
	bus := NewBus()
	var slots []SlotChanged
	var closed int
	Subscribe(bus, func(e SlotChanged) { slots = append(slots, e) })
	Subscribe(bus, func(Closed) { closed++ })

	Publish(bus, SlotChanged{Slot: 4})
	Publish(bus, DataChanged{Index: 1})

	if len(slots) != 1 || slots[0].Slot != 4 {
		t.Errorf("slot events = %+v, want one for slot 4", slots)
	}
	if closed != 0 {
		t.Errorf("closed handler ran %d times, want 0", closed)
	}
	if HasSubscribers[DataChanged](bus) {
		t.Errorf("HasSubscribers[DataChanged] = true, want false")
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	calls := 0
	var unsub func()
	unsub = Subscribe(bus, func(Closed) {
		calls++
		unsub()
	})
	Subscribe(bus, func(Closed) { calls++ })

	Publish(bus, Closed{})
	Publish(bus, Closed{})

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestPanickingHandlerIsLogged(t *testing.T) {
	bus := NewBus()
	var buf bytes.Buffer
	bus.Logger = log.New(&buf, "", 0)
	calls := 0
	Subscribe(bus, func(Closed) { panic("boom") })
	Subscribe(bus, func(Closed) { calls++ })

	Publish(bus, Closed{})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !strings.Contains(buf.String(), "panicked: boom") {
		t.Errorf("log = %q, want the handler panic", buf.String())
	}
}

func TestRecorder(t *testing.T) {
	bus := NewBus()
	rec := NewRecorder(bus)
	var sent []SlotSent
	var changed []SlotChanged
	var contents []ContentSent
	Subscribe(bus, func(e SlotSent) { sent = append(sent, e) })
	Subscribe(bus, func(e SlotChanged) { changed = append(changed, e) })
	Subscribe(bus, func(e ContentSent) { contents = append(contents, e) })

	cat := item.NewCatalog(item.Def{Kind: 1, Name: "stone"})
	c := container.NewSimple(2)
	m := menu.New("test:menu", 3, cat)
	m.AddContainerSlots(c, 0, 2)
	m.SetSynchronizer(rec.Wrap(&nopSync{}))
	m.AddListener(rec)

	c.SetItem(1, item.New(1, 7))
	m.BroadcastChanges()

	if len(contents) != 1 || contents[0].Menu != (MenuRef{ID: 3, Type: "test:menu"}) {
		t.Errorf("content events = %+v", contents)
	}
	if len(changed) != 1 || changed[0].Slot != 1 || changed[0].Stack.Count != 7 {
		t.Errorf("slot changed events = %+v, want one for slot 1", changed)
	}
	if len(sent) != 1 || sent[0].StateID != m.StateID() {
		t.Errorf("slot sent events = %+v, want one with state id %d", sent, m.StateID())
	}
}

func TestRecorderClicked(t *testing.T) {
	bus := NewBus()
	var got []Clicked
	Subscribe(bus, func(e Clicked) { got = append(got, e) })
	m := menu.New("test:menu", 1, item.NewCatalog())

	NewRecorder(bus).Clicked(netsync.Click{Menu: m, Slot: 2, Button: 1, Type: menu.Throw, Err: errors.New("boom")})

	if len(got) != 1 {
		t.Fatalf("got %d click events, want 1", len(got))
	}
	if e := got[0]; e.Slot != 2 || e.Button != 1 || e.Type != menu.Throw || e.Err != "boom" {
		t.Errorf("click event = %+v", e)
	}
}

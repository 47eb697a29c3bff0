package trace

import (
	"github.com/jilio/ebu"

	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
	"github.com/go-mclib/menu/pkg/netsync"
)

// Recorder publishes menu traffic on a Bus. It is a menu.Listener for local
// changes; Wrap decorates a synchronizer to publish what is sent; Clicked and
// Closed fit netsync.Session callbacks.
type Recorder struct {
	bus *Bus
}

var _ menu.Listener = (*Recorder)(nil)

func NewRecorder(bus *Bus) *Recorder {
	return &Recorder{bus: bus}
}

func (r *Recorder) Bus() *Bus { return r.bus }

func (r *Recorder) SlotChanged(m *menu.Menu, index int, s item.Stack) {
	ebu.Publish(r.bus.events, SlotChanged{Menu: refOf(m), Slot: index, Stack: s})
}

func (r *Recorder) DataChanged(m *menu.Menu, index, value int) {
	ebu.Publish(r.bus.events, DataChanged{Menu: refOf(m), Index: index, Value: value})
}

func (r *Recorder) Clicked(c netsync.Click) {
	ev := Clicked{
		Menu:    refOf(c.Menu),
		Slot:    c.Slot,
		Button:  c.Button,
		Type:    c.Type,
		StateID: c.StateID,
		Desync:  c.Desync,
	}
	if c.Err != nil {
		ev.Err = c.Err.Error()
	}
	ebu.Publish(r.bus.events, ev)
}

func (r *Recorder) Closed(m *menu.Menu) {
	ebu.Publish(r.bus.events, Closed{Menu: refOf(m)})
}

// Wrap returns a synchronizer that forwards to next and publishes each call
// after it returns, so state ids reflect what next sent.
func (r *Recorder) Wrap(next menu.Synchronizer) menu.Synchronizer {
	return &recordingSynchronizer{r: r, next: next}
}

type recordingSynchronizer struct {
	r    *Recorder
	next menu.Synchronizer
}

func (s *recordingSynchronizer) SendInitialData(m *menu.Menu, slots []item.Stack, carried item.Stack, data []int) {
	s.next.SendInitialData(m, slots, carried, data)
	ebu.Publish(s.r.bus.events, ContentSent{Menu: refOf(m), StateID: m.StateID(), Slots: slots, Carried: carried, Data: data})
}

func (s *recordingSynchronizer) SendSlotChange(m *menu.Menu, index int, st item.Stack) {
	s.next.SendSlotChange(m, index, st)
	ebu.Publish(s.r.bus.events, SlotSent{Menu: refOf(m), StateID: m.StateID(), Slot: index, Stack: st})
}

func (s *recordingSynchronizer) SendCarriedChange(m *menu.Menu, st item.Stack) {
	s.next.SendCarriedChange(m, st)
	ebu.Publish(s.r.bus.events, CarriedSent{Menu: refOf(m), StateID: m.StateID(), Stack: st})
}

func (s *recordingSynchronizer) SendDataChange(m *menu.Menu, index, value int) {
	s.next.SendDataChange(m, index, value)
	ebu.Publish(s.r.bus.events, DataSent{Menu: refOf(m), Index: index, Value: value})
}

package netsync

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/go-mclib/data/pkg/data/packet_ids"
	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/menu/pkg/menu"
	jp "github.com/go-mclib/protocol/java_protocol"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

// maxChangedSlots bounds the predictions accepted from one click.
const maxChangedSlots = 128

// Click describes one click handled by a session.
type Click struct {
	Menu    *menu.Menu
	Slot    int
	Button  int
	Type    menu.ClickType
	StateID int
	// Desync is set when the client's state id did not match the menu's.
	Desync bool
	Err    error
}

// Session is the authoritative side of one participant's open menu. It is
// safe for concurrent use.
type Session struct {
	Logger *log.Logger

	mu           sync.Mutex
	player       menu.Participant
	synchronizer menu.Synchronizer
	menu         *menu.Menu
	desync       int

	onClick []func(c Click)
	onClose []func(m *menu.Menu)
}

func NewSession(player menu.Participant, w PacketWriter, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{
		Logger:       logger,
		player:       player,
		synchronizer: NewSynchronizer(w, logger),
	}
}

// OnClick registers a callback run after every handled click. Callbacks run
// with the session locked and must not call back into it.
func (s *Session) OnClick(cb func(c Click)) {
	s.mu.Lock()
	s.onClick = append(s.onClick, cb)
	s.mu.Unlock()
}

// OnClose registers a callback run when the open menu is closed.
func (s *Session) OnClose(cb func(m *menu.Menu)) {
	s.mu.Lock()
	s.onClose = append(s.onClose, cb)
	s.mu.Unlock()
}

// Wrap replaces the session's synchronizer with wrap applied to it. Menus
// opened afterwards use the result.
func (s *Session) Wrap(wrap func(next menu.Synchronizer) menu.Synchronizer) {
	s.mu.Lock()
	s.synchronizer = wrap(s.synchronizer)
	s.mu.Unlock()
}

// Open closes the current menu, if any, and makes m the open menu. The
// full state of m is pushed to the client. A menu that was closed before
// cannot be opened again.
func (s *Session) Open(m *menu.Menu) error {
	if m.Closed() {
		return fmt.Errorf("netsync: open %s: %w", m.Type(), menu.ErrClosed)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	s.menu = m
	m.SetSynchronizer(s.synchronizer)
	return nil
}

// Menu returns the open menu, or nil.
func (s *Session) Menu() *menu.Menu {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menu
}

// Desyncs returns how many clicks arrived with a stale state id.
func (s *Session) Desyncs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.desync
}

// Do runs fn against the open menu while holding the session lock, then
// broadcasts changes. It is a no-op when no menu is open.
func (s *Session) Do(fn func(m *menu.Menu)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.menu == nil {
		return
	}
	fn(s.menu)
	s.menu.BroadcastChanges()
}

// Close closes the open menu on behalf of the server.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	m := s.menu
	if m == nil {
		return
	}
	s.menu = nil
	m.Removed(s.player)
	for _, cb := range s.onClose {
		cb(m)
	}
}

// HandlePacket dispatches serverbound container packets.
func (s *Session) HandlePacket(pkt *jp.WirePacket) error {
	switch pkt.PacketID {
	case packet_ids.C2SContainerClickID:
		var d packets.C2SContainerClick
		if err := pkt.ReadInto(&d); err != nil {
			s.Logger.Println("netsync: failed to parse container click:", err)
			return nil
		}
		return s.HandleClick(&d)
	case packet_ids.C2SContainerCloseID:
		var d packets.C2SContainerClose
		if err := pkt.ReadInto(&d); err != nil {
			s.Logger.Println("netsync: failed to parse container close:", err)
			return nil
		}
		s.HandleClose(&d)
	case packet_ids.C2SContainerButtonClickID:
		var d packets.C2SContainerButtonClick
		if err := pkt.ReadInto(&d); err != nil {
			s.Logger.Println("netsync: failed to parse container button click:", err)
			return nil
		}
		s.HandleButtonClick(&d)
	}
	return nil
}

// HandleButtonClick passes a menu button press to the open menu. It reports
// whether the menu accepted it; accepted presses are broadcast.
func (s *Session) HandleButtonClick(d *packets.C2SContainerButtonClick) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.menu
	if m == nil || int(d.WindowId) != m.ContainerID() {
		return false
	}
	if !m.StillValid(s.player) {
		s.Logger.Printf("netsync: %s interacted with invalid menu %s", s.player.Name(), m.Type())
		return false
	}
	if !m.ClickMenuButton(s.player, int(d.ButtonId)) {
		return false
	}
	m.BroadcastChanges()
	return true
}

// HandleClick applies a client click. Predictions in the packet that match
// the authoritative result are not echoed back; mismatching ones are
// re-sent. A stale state id forces a full resync. A *menu.ClickError closes
// the menu and is returned.
func (s *Session) HandleClick(d *packets.C2SContainerClick) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.menu
	if m == nil || int(d.WindowId) != m.ContainerID() {
		s.Logger.Printf("netsync: %s clicked in window %d, which is not open", s.player.Name(), d.WindowId)
		return nil
	}
	if !m.StillValid(s.player) {
		s.Logger.Printf("netsync: %s interacted with invalid menu %s", s.player.Name(), m.Type())
		return nil
	}
	slot := int(d.Slot)
	if !m.IsValidSlotIndex(slot) {
		s.Logger.Printf("netsync: %s clicked invalid slot %d, available slots: %d", s.player.Name(), slot, m.SlotCount())
		return nil
	}
	t := menu.ClickType(d.Mode)
	if t < menu.Pickup || t > menu.PickupAll {
		s.Logger.Printf("netsync: %s sent unknown click mode %d", s.player.Name(), d.Mode)
		return nil
	}

	desync := int(d.StateId) != m.StateID()
	if desync {
		s.desync++
	}

	m.SuppressRemoteUpdates()
	err := m.Clicked(slot, int(d.Button), t, s.player)
	if err == nil {
		s.applyPredictions(m, d.ChangedSlots, d.CarriedItem)
	}
	m.ResumeRemoteUpdates()

	c := Click{Menu: m, Slot: slot, Button: int(d.Button), Type: t, StateID: int(d.StateId), Desync: desync, Err: err}
	if err != nil {
		s.closeLocked()
	} else if desync {
		m.BroadcastFullState()
	} else {
		m.BroadcastChanges()
	}
	for _, cb := range s.onClick {
		cb(c)
	}
	return err
}

func (s *Session) applyPredictions(m *menu.Menu, changed []packets.ChangedSlot, carried ns.HashedSlot) {
	if len(changed) > maxChangedSlots {
		s.Logger.Printf("netsync: %s reported %d changed slots, ignoring predictions", s.player.Name(), len(changed))
		changed = nil
	}
	for _, cs := range changed {
		i := int(cs.SlotNum)
		if i < 0 || i >= m.SlotCount() {
			continue
		}
		if st := m.Slot(i).Item(); MatchesHashed(st, cs.Item) {
			m.SetRemoteSlot(i, st)
		} else {
			m.InvalidateRemoteSlot(i)
		}
	}
	if MatchesHashed(m.Carried(), carried) {
		m.SetRemoteCarried(m.Carried())
	} else {
		m.InvalidateRemoteCarried()
	}
}

// HandleClose closes the menu when the client closes it.
func (s *Session) HandleClose(d *packets.C2SContainerClose) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.menu == nil || int(d.WindowId) != s.menu.ContainerID() {
		return
	}
	s.closeLocked()
}

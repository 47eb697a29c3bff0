package menu

import (
	"slices"

	"github.com/go-mclib/menu/pkg/item"
)

// Synchronizer pushes menu state to the remote side. Calls are fire and
// forget.
type Synchronizer interface {
	SendInitialData(m *Menu, slots []item.Stack, carried item.Stack, data []int)
	SendSlotChange(m *Menu, index int, s item.Stack)
	SendCarriedChange(m *Menu, s item.Stack)
	SendDataChange(m *Menu, index, value int)
}

// SetSynchronizer attaches s and pushes the full state to it.
func (m *Menu) SetSynchronizer(s Synchronizer) {
	m.synchronizer = s
	m.SendAllDataToRemote()
}

// SuppressRemoteUpdates pauses remote diffing until ResumeRemoteUpdates.
// Listeners are still notified.
func (m *Menu) SuppressRemoteUpdates() { m.suppressRemote = true }

func (m *Menu) ResumeRemoteUpdates() { m.suppressRemote = false }

// BroadcastChanges notifies listeners and the synchronizer of every slot,
// the carried stack and every data field that changed since the last pass.
func (m *Menu) BroadcastChanges() {
	for i, s := range m.slots {
		cur := s.Item()
		var copied *item.Stack
		memo := func() item.Stack {
			if copied == nil {
				c := cur.Copy()
				copied = &c
			}
			return *copied
		}
		m.triggerSlotListeners(i, cur, memo)
		m.syncSlotToRemote(i, cur, memo)
	}
	m.syncCarriedToRemote()

	for i, d := range m.dataSlots {
		v := d.Get()
		if d.CheckAndClearUpdateFlag() {
			m.notifyData(i, v)
		}
		m.syncDataToRemote(i, v)
	}
}

// BroadcastFullState notifies listeners of every slot and data field, then
// pushes the full state to the synchronizer.
func (m *Menu) BroadcastFullState() {
	for i, s := range m.slots {
		c := s.Item().Copy()
		m.lastSlots[i] = c
		m.notifySlot(i, c)
	}
	for i, d := range m.dataSlots {
		d.CheckAndClearUpdateFlag()
		m.notifyData(i, d.Get())
	}
	m.SendAllDataToRemote()
}

// SendAllDataToRemote overwrites the remote snapshot with the current state
// and pushes it under a new state id.
func (m *Menu) SendAllDataToRemote() {
	for i, s := range m.slots {
		m.remoteSlots[i] = s.Item().Copy()
		m.remoteStale[i] = false
	}
	m.remoteCarried = m.carried.Copy()
	m.carriedStale = false
	for i, d := range m.dataSlots {
		m.remoteData[i] = d.Get()
	}
	m.IncrementStateID()
	if m.synchronizer != nil {
		slots := make([]item.Stack, len(m.remoteSlots))
		for i, s := range m.remoteSlots {
			slots[i] = s.Copy()
		}
		m.synchronizer.SendInitialData(m, slots, m.remoteCarried.Copy(), slices.Clone(m.remoteData))
	}
}

func (m *Menu) triggerSlotListeners(i int, cur item.Stack, memo func() item.Stack) {
	if item.Matches(m.lastSlots[i], cur) {
		return
	}
	c := memo()
	m.lastSlots[i] = c
	m.notifySlot(i, c)
}

func (m *Menu) syncSlotToRemote(i int, cur item.Stack, memo func() item.Stack) {
	if m.suppressRemote {
		return
	}
	if item.Matches(m.remoteSlots[i], cur) && !m.remoteStale[i] {
		return
	}
	c := memo()
	m.remoteSlots[i] = c
	m.remoteStale[i] = false
	if m.synchronizer != nil {
		m.synchronizer.SendSlotChange(m, i, c)
	}
}

func (m *Menu) syncCarriedToRemote() {
	if m.suppressRemote {
		return
	}
	if item.Matches(m.carried, m.remoteCarried) && !m.carriedStale {
		return
	}
	m.remoteCarried = m.carried.Copy()
	m.carriedStale = false
	if m.synchronizer != nil {
		m.synchronizer.SendCarriedChange(m, m.remoteCarried)
	}
}

func (m *Menu) syncDataToRemote(i, v int) {
	if m.suppressRemote || m.remoteData[i] == v {
		return
	}
	m.remoteData[i] = v
	if m.synchronizer != nil {
		m.synchronizer.SendDataChange(m, i, v)
	}
}

// SetRemoteSlot records that the remote side already holds s in slot i.
func (m *Menu) SetRemoteSlot(i int, s item.Stack) {
	m.Slot(i)
	m.remoteSlots[i] = s.Copy()
	m.remoteStale[i] = false
}

// SetRemoteCarried records that the remote side already holds s as carried.
func (m *Menu) SetRemoteCarried(s item.Stack) {
	m.remoteCarried = s.Copy()
	m.carriedStale = false
}

// InvalidateRemoteSlot forces slot i to be re-sent on the next pass.
func (m *Menu) InvalidateRemoteSlot(i int) {
	m.Slot(i)
	m.remoteStale[i] = true
}

// InvalidateRemoteCarried forces the carried stack to be re-sent on the
// next pass.
func (m *Menu) InvalidateRemoteCarried() { m.carriedStale = true }

// RemoteSlot returns the last stack sent for slot i.
func (m *Menu) RemoteSlot(i int) item.Stack {
	m.Slot(i)
	return m.remoteSlots[i]
}

func (m *Menu) RemoteCarried() item.Stack { return m.remoteCarried }

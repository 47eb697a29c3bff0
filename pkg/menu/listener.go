package menu

import (
	"slices"

	"github.com/go-mclib/menu/pkg/item"
)

// Listener observes local slot and data changes of a menu.
type Listener interface {
	SlotChanged(m *Menu, index int, s item.Stack)
	DataChanged(m *Menu, index, value int)
}

// AddListener registers l once and runs a broadcast pass so it sees the
// current contents.
func (m *Menu) AddListener(l Listener) {
	if slices.Contains(m.listeners, l) {
		return
	}
	m.listeners = append(m.listeners, l)
	m.BroadcastChanges()
}

func (m *Menu) RemoveListener(l Listener) {
	m.listeners = slices.DeleteFunc(m.listeners, func(x Listener) bool { return x == l })
}

// notifySlot iterates over a snapshot so callbacks may add or remove
// listeners.
func (m *Menu) notifySlot(i int, s item.Stack) {
	for _, l := range slices.Clone(m.listeners) {
		l.SlotChanged(m, i, s)
	}
}

func (m *Menu) notifyData(i, v int) {
	for _, l := range slices.Clone(m.listeners) {
		l.DataChanged(m, i, v)
	}
}

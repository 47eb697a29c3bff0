package menu

import (
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/go-mclib/menu/pkg/container"
	"github.com/go-mclib/menu/pkg/item"
)

// SlotClickedOutside is the slot index of a click outside the menu window.
const SlotClickedOutside = -999

// stateIDMask keeps state ids within 15 bits.
const stateIDMask = 1<<15 - 1

// Type is a menu registry key such as "minecraft:generic_9x3". Empty means
// the menu has no registered type.
type Type string

func (t Type) String() string {
	if t == "" {
		return "<no type>"
	}
	return string(t)
}

// Participant is the player-like actor interacting with a menu.
type Participant interface {
	Name() string
	// Instabuild reports unrestricted placement privilege (creative mode).
	Instabuild() bool
	Inventory() container.Storage
	Alive() bool
	Disconnected() bool
	Drop(s item.Stack, thrown bool)
}

// Menu coordinates the slots of one open container view, the carried stack
// and the remote mirror. A Menu is owned by a single goroutine.
type Menu struct {
	Logger *log.Logger

	menuType    Type
	containerID int
	catalog     *item.Catalog
	behavior    Behavior

	slots     []*Slot
	lastSlots []item.Stack
	dataSlots []*DataSlot
	carried   item.Stack
	stateID   int

	remoteSlots   []item.Stack
	remoteStale   []bool
	remoteData    []int
	remoteCarried item.Stack
	carriedStale  bool

	quickcraft quickcraft

	listeners      []Listener
	synchronizer   Synchronizer
	suppressRemote bool
	closed         bool
}

type Option func(*Menu)

// WithBehavior installs container-specific rules.
func WithBehavior(b Behavior) Option {
	return func(m *Menu) { m.behavior = b }
}

func WithLogger(l *log.Logger) Option {
	return func(m *Menu) { m.Logger = l }
}

// New creates an empty menu. Add slots and data slots before attaching a
// synchronizer.
func New(t Type, containerID int, catalog *item.Catalog, opts ...Option) *Menu {
	m := &Menu{
		Logger:      log.New(io.Discard, "", log.LstdFlags),
		menuType:    t,
		containerID: containerID,
		catalog:     catalog,
		behavior:    BaseBehavior{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Menu) Type() Type                 { return m.menuType }
func (m *Menu) ContainerID() int           { return m.containerID }
func (m *Menu) Catalog() *item.Catalog     { return m.catalog }
func (m *Menu) Behavior() Behavior         { return m.behavior }
func (m *Menu) Closed() bool               { return m.closed }
func (m *Menu) SlotCount() int             { return len(m.slots) }
func (m *Menu) DataCount() int             { return len(m.dataSlots) }
func (m *Menu) Synchronizer() Synchronizer { return m.synchronizer }

// AddSlot appends s, assigning its index.
func (m *Menu) AddSlot(s *Slot) *Slot {
	s.index = len(m.slots)
	s.catalog = m.catalog
	m.slots = append(m.slots, s)
	m.lastSlots = append(m.lastSlots, item.Empty)
	m.remoteSlots = append(m.remoteSlots, item.Empty)
	m.remoteStale = append(m.remoteStale, false)
	return s
}

// AddContainerSlots adds one slot per position in [from, to) of c.
func (m *Menu) AddContainerSlots(c container.Container, from, to int, opts ...SlotOption) {
	for i := from; i < to; i++ {
		m.AddSlot(NewSlot(c, i, opts...))
	}
}

func (m *Menu) AddDataSlot(d *DataSlot) *DataSlot {
	m.dataSlots = append(m.dataSlots, d)
	m.remoteData = append(m.remoteData, 0)
	return d
}

// AddDataSlots adds one data slot per value of data.
func (m *Menu) AddDataSlots(data ContainerData) {
	for i := range data.Count() {
		m.AddDataSlot(ForContainer(data, i))
	}
}

// Slot returns the slot at index i. It panics when i is out of range.
func (m *Menu) Slot(i int) *Slot {
	if i < 0 || i >= len(m.slots) {
		panic(fmt.Sprintf("menu: slot index %d out of range [0, %d)", i, len(m.slots)))
	}
	return m.slots[i]
}

func (m *Menu) Slots() []*Slot { return slices.Clone(m.slots) }

// DataSlot returns the data slot at index i. It panics when i is out of range.
func (m *Menu) DataSlot(i int) *DataSlot {
	if i < 0 || i >= len(m.dataSlots) {
		panic(fmt.Sprintf("menu: data slot index %d out of range [0, %d)", i, len(m.dataSlots)))
	}
	return m.dataSlots[i]
}

// IsValidSlotIndex accepts real slots plus the -1 and outside sentinels.
func (m *Menu) IsValidSlotIndex(i int) bool {
	return i == -1 || i == SlotClickedOutside || (i >= 0 && i < len(m.slots))
}

// Items returns the current contents of every slot.
func (m *Menu) Items() []item.Stack {
	out := make([]item.Stack, len(m.slots))
	for i, s := range m.slots {
		out[i] = s.Item()
	}
	return out
}

// FindSlot returns the menu index bound to position pos of c.
func (m *Menu) FindSlot(c container.Container, pos int) (int, bool) {
	for i, s := range m.slots {
		if s.container == c && s.pos == pos {
			return i, true
		}
	}
	return -1, false
}

func (m *Menu) Carried() item.Stack { return m.carried }

func (m *Menu) SetCarried(s item.Stack) {
	m.carried = s.Copy()
}

func (m *Menu) StateID() int { return m.stateID }

// IncrementStateID advances the state id, wrapping at 2^15, and returns it.
func (m *Menu) IncrementStateID() int {
	m.stateID = (m.stateID + 1) & stateIDMask
	return m.stateID
}

// QuickMoveStack asks the behavior to move the stack in slot index elsewhere.
func (m *Menu) QuickMoveStack(p Participant, index int) item.Stack {
	return m.behavior.QuickMoveStack(m, p, index)
}

// StillValid reports whether p may keep the menu open.
func (m *Menu) StillValid(p Participant) bool {
	return m.behavior.StillValid(p)
}

// ClickMenuButton handles a menu-specific button id and reports whether the
// menu accepted it.
func (m *Menu) ClickMenuButton(p Participant, id int) bool {
	if m.closed {
		return false
	}
	if bc, ok := m.behavior.(ButtonClicker); ok {
		return bc.ClickMenuButton(m, p, id)
	}
	return false
}

// SlotsChanged is the container change hook: it runs a broadcast pass.
func (m *Menu) SlotsChanged(container.Container) {
	m.BroadcastChanges()
}

// Removed closes the menu for p. A carried stack goes back into p's storage
// when p is alive and connected, otherwise it is dropped. Only the first
// call has any effect.
func (m *Menu) Removed(p Participant) {
	if m.closed {
		return
	}
	m.closed = true
	m.resetQuickcraft()

	carried := m.carried
	if carried.IsEmpty() {
		return
	}
	if p.Alive() && !p.Disconnected() {
		if rest := p.Inventory().Add(carried); !rest.IsEmpty() {
			p.Drop(rest, false)
		}
	} else {
		p.Drop(carried, false)
	}
	m.carried = item.Empty
}

type slotKey struct {
	c   container.Container
	pos int
}

// TransferState carries the last-notified and remote snapshots of other over
// to the slots of m that bind the same container positions.
func (m *Menu) TransferState(other *Menu) {
	table := make(map[slotKey]int, len(other.slots))
	for i, s := range other.slots {
		table[slotKey{s.container, s.pos}] = i
	}
	for j, s := range m.slots {
		i, ok := table[slotKey{s.container, s.pos}]
		if !ok {
			continue
		}
		m.lastSlots[j] = other.lastSlots[i]
		m.remoteSlots[j] = other.remoteSlots[i]
		m.remoteStale[j] = other.remoteStale[i]
	}
}

// InitializeContents replaces every slot and the carried stack, as the
// display side does on a full-state packet.
func (m *Menu) InitializeContents(stateID int, items []item.Stack, carried item.Stack) {
	for i, s := range items {
		m.Slot(i).Set(s)
	}
	m.carried = carried.Copy()
	m.stateID = stateID
}

// SetItem writes one slot on behalf of the remote side.
func (m *Menu) SetItem(slot, stateID int, s item.Stack) {
	m.Slot(slot).Set(s)
	m.stateID = stateID
}

// SetData writes one data slot on behalf of the remote side.
func (m *Menu) SetData(i, v int) {
	m.DataSlot(i).Set(v)
}

// CheckContainerSize fails when c has fewer than n slots.
func CheckContainerSize(c container.Container, n int) error {
	if size := c.Size(); size < n {
		return fmt.Errorf("container size %d is smaller than expected %d", size, n)
	}
	return nil
}

// CheckContainerDataCount fails when d has fewer than n values.
func CheckContainerDataCount(d ContainerData, n int) error {
	if count := d.Count(); count < n {
		return fmt.Errorf("container data count %d is smaller than expected %d", count, n)
	}
	return nil
}

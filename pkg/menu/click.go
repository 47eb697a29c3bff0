package menu

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/go-mclib/menu/pkg/container"
	"github.com/go-mclib/menu/pkg/item"
)

// ClickType identifies the kind of interaction event.
type ClickType int

const (
	Pickup ClickType = iota
	QuickMove
	Swap
	Clone
	Throw
	QuickCraft
	PickupAll
)

var clickTypeNames = [...]string{"PICKUP", "QUICK_MOVE", "SWAP", "CLONE", "THROW", "QUICK_CRAFT", "PICKUP_ALL"}

func (t ClickType) String() string {
	if t >= 0 && int(t) < len(clickTypeNames) {
		return clickTypeNames[t]
	}
	return fmt.Sprintf("ClickType(%d)", int(t))
}

// ParseClickType resolves a click type by its name.
func ParseClickType(s string) (ClickType, error) {
	for i, name := range clickTypeNames {
		if name == s {
			return ClickType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown click type %q", s)
}

func (t ClickType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(clickTypeNames) {
		return nil, fmt.Errorf("unknown click type %d", int(t))
	}
	return []byte(clickTypeNames[t]), nil
}

func (t *ClickType) UnmarshalText(b []byte) error {
	v, err := ParseClickType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ErrClosed is returned for interaction with a menu that was removed.
var ErrClosed = errors.New("menu: closed")

// ClickError describes a fault raised while handling a click. The session
// that produced it must be considered broken.
type ClickError struct {
	MenuType  Type
	MenuClass string
	SlotCount int
	Slot      int
	Button    int
	Type      ClickType
	Cause     any
	Stack     []byte
}

func (e *ClickError) Error() string {
	return fmt.Sprintf("menu: container click failed (menu type %s, class %s, slot count %d, slot %d, button %d, type %s): %v",
		e.MenuType, e.MenuClass, e.SlotCount, e.Slot, e.Button, e.Type, e.Cause)
}

// Unwrap exposes the cause when the fault was an error value.
func (e *ClickError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// Clicked handles one interaction event from p. Any fault is reported as a
// *ClickError. A removed menu ignores the event and returns ErrClosed.
func (m *Menu) Clicked(slot, button int, t ClickType, p Participant) (err error) {
	if m.closed {
		return ErrClosed
	}
	defer func() {
		if r := recover(); r != nil {
			ce := &ClickError{
				MenuType:  m.menuType,
				MenuClass: fmt.Sprintf("%T", m.behavior),
				SlotCount: len(m.slots),
				Slot:      slot,
				Button:    button,
				Type:      t,
				Cause:     r,
				Stack:     debug.Stack(),
			}
			m.Logger.Println(ce)
			err = ce
		}
	}()
	m.doClick(slot, button, t, p)
	return nil
}

func (m *Menu) doClick(slot, button int, t ClickType, p Participant) {
	if t == QuickCraft {
		m.clickQuickcraft(slot, button, p)
		return
	}
	if m.quickcraft.status != quickcraftIdle {
		m.resetQuickcraft()
		return
	}

	switch t {
	case Pickup, QuickMove:
		if button != 0 && button != 1 {
			return
		}
		switch {
		case slot == SlotClickedOutside:
			m.clickOutside(button, p)
		case t == QuickMove:
			m.clickQuickMove(slot, p)
		default:
			m.clickPickup(slot, button, p)
		}
	case Swap:
		m.clickSwap(slot, button, p)
	case Clone:
		m.clickClone(slot, p)
	case Throw:
		m.clickThrow(slot, button, p)
	case PickupAll:
		m.clickPickupAll(slot, button, p)
	default:
		panic(fmt.Sprintf("menu: unhandled click type %v", t))
	}
}

func (m *Menu) clickOutside(button int, p Participant) {
	if m.carried.IsEmpty() {
		return
	}
	if button == 0 {
		p.Drop(m.carried, true)
		m.carried = item.Empty
		return
	}
	p.Drop(m.carried.Split(1), true)
}

func (m *Menu) clickQuickMove(slot int, p Participant) {
	if slot < 0 {
		return
	}
	s := m.Slot(slot)
	if !s.MayPickup(p) {
		return
	}
	before := s.Item().Copy()
	for moved := m.QuickMoveStack(p, slot); !moved.IsEmpty() && item.SameItem(s.Item(), moved); moved = m.QuickMoveStack(p, slot) {
		cur := s.Item()
		if item.Matches(cur, before) {
			break
		}
		before = cur.Copy()
	}
}

func (m *Menu) clickPickup(slot, button int, p Participant) {
	if slot < 0 {
		return
	}
	s := m.Slot(slot)
	inSlot := s.Item()
	carried := m.carried
	primary := button == 0

	switch {
	case inSlot.IsEmpty():
		if !carried.IsEmpty() {
			n := 1
			if primary {
				n = carried.Count
			}
			m.carried = s.SafeInsert(carried, n)
		}
	case !s.MayPickup(p):
	case carried.IsEmpty():
		n := (inSlot.Count + 1) / 2
		if primary {
			n = inSlot.Count
		}
		if taken, ok := s.TryRemove(n, NoLimit, p); ok {
			m.carried = taken
			s.OnTake(p, taken)
		}
	case s.MayPlace(carried):
		if item.SameItemSameComponents(inSlot, carried) {
			n := 1
			if primary {
				n = carried.Count
			}
			m.carried = s.SafeInsert(carried, n)
		} else if carried.Count <= s.MaxStackSizeFor(carried) {
			s.Set(carried)
			m.carried = inSlot.Copy()
		}
	case item.SameItemSameComponents(inSlot, carried):
		limit := m.catalog.MaxStackSize(carried) - carried.Count
		if taken, ok := s.TryRemove(inSlot.Count, limit, p); ok {
			carried.Grow(taken.Count)
			m.carried = carried
			s.OnTake(p, taken)
		}
	}
	s.SetChanged()
}

// clickSwap exchanges the slot with inventory position button, a hotbar
// index or the offhand.
func (m *Menu) clickSwap(slot, button int, p Participant) {
	if slot < 0 || !(button >= container.HotbarStart && button < container.HotbarEnd || button == container.Offhand) {
		return
	}
	inv := p.Inventory()
	if button >= inv.Size() {
		return
	}
	s := m.Slot(slot)
	fromInv := inv.Item(button)
	inSlot := s.Item()
	if fromInv.IsEmpty() && inSlot.IsEmpty() {
		return
	}

	switch {
	case fromInv.IsEmpty():
		if s.MayPickup(p) {
			inv.SetItem(button, inSlot)
			s.Set(item.Empty)
			s.OnTake(p, inSlot)
		}
	case inSlot.IsEmpty():
		if s.MayPlace(fromInv) {
			if limit := s.MaxStackSizeFor(fromInv); fromInv.Count > limit {
				s.Set(fromInv.Split(limit))
				inv.SetItem(button, fromInv)
			} else {
				inv.SetItem(button, item.Empty)
				s.Set(fromInv)
			}
		}
	case s.MayPickup(p) && s.MayPlace(fromInv):
		if limit := s.MaxStackSizeFor(fromInv); fromInv.Count > limit {
			s.Set(fromInv.Split(limit))
			inv.SetItem(button, fromInv)
			s.OnTake(p, inSlot)
			if rest := inv.Add(inSlot); !rest.IsEmpty() {
				p.Drop(rest, true)
			}
		} else {
			inv.SetItem(button, inSlot)
			s.Set(fromInv)
			s.OnTake(p, inSlot)
		}
	}
	inv.SetChanged()
}

func (m *Menu) clickClone(slot int, p Participant) {
	if !p.Instabuild() || !m.carried.IsEmpty() || slot < 0 {
		return
	}
	s := m.Slot(slot)
	if !s.HasItem() {
		return
	}
	st := s.Item()
	m.carried = st.WithCount(m.catalog.MaxStackSize(st))
}

func (m *Menu) clickThrow(slot, button int, p Participant) {
	if !m.carried.IsEmpty() || slot < 0 {
		return
	}
	s := m.Slot(slot)
	n := s.Item().Count
	if button == 0 {
		n = 1
	}
	p.Drop(s.SafeTake(n, NoLimit, p), true)
}

// clickPickupAll gathers matching stacks into the carried item. The first
// pass leaves full stacks alone so they are only broken up last.
func (m *Menu) clickPickupAll(slot, button int, p Participant) {
	if slot < 0 {
		return
	}
	s := m.Slot(slot)
	if m.carried.IsEmpty() || (s.HasItem() && s.MayPickup(p)) {
		return
	}
	start, step := 0, 1
	if button != 0 {
		start, step = len(m.slots)-1, -1
	}
	limit := m.catalog.MaxStackSize(m.carried)

	for pass := range 2 {
		for i := start; i >= 0 && i < len(m.slots) && m.carried.Count < limit; i += step {
			src := m.slots[i]
			if !src.HasItem() || !CanItemQuickReplace(src, m.carried, true) ||
				!src.MayPickup(p) || !m.canTakeItemForPickAll(m.carried, src) {
				continue
			}
			st := src.Item()
			if pass == 0 && st.Count == m.catalog.MaxStackSize(st) {
				continue
			}
			taken := src.SafeTake(st.Count, limit-m.carried.Count, p)
			m.carried.Grow(taken.Count)
		}
	}
}

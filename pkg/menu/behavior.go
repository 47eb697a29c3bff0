package menu

import "github.com/go-mclib/menu/pkg/item"

// Behavior holds the container-specific rules of a menu.
type Behavior interface {
	// QuickMoveStack moves the stack in slot index to the "other side" of
	// the menu and returns what the slot held before the move, or Empty
	// when nothing could move.
	QuickMoveStack(m *Menu, p Participant, index int) item.Stack
	StillValid(p Participant) bool
}

// DragTargeter vetoes quick-craft targets.
type DragTargeter interface {
	CanDragTo(s *Slot) bool
}

// PickAllFilter vetoes slots during a collect-all click.
type PickAllFilter interface {
	CanTakeItemForPickAll(carried item.Stack, s *Slot) bool
}

// ButtonClicker handles menu-specific buttons such as enchantment choices.
type ButtonClicker interface {
	ClickMenuButton(m *Menu, p Participant, id int) bool
}

// BaseBehavior is the default: quick-move returns the slot contents
// unchanged and the menu is always valid.
type BaseBehavior struct{}

func (BaseBehavior) QuickMoveStack(m *Menu, _ Participant, index int) item.Stack {
	return m.Slot(index).Item()
}

func (BaseBehavior) StillValid(Participant) bool { return true }

func (m *Menu) canDragTo(s *Slot) bool {
	if dt, ok := m.behavior.(DragTargeter); ok {
		return dt.CanDragTo(s)
	}
	return true
}

func (m *Menu) canTakeItemForPickAll(carried item.Stack, s *Slot) bool {
	if f, ok := m.behavior.(PickAllFilter); ok {
		return f.CanTakeItemForPickAll(carried, s)
	}
	return true
}

// CanItemQuickReplace reports whether st may be dropped onto s: s is empty,
// or holds the same item and components and, when sizeMatters, the sum
// still fits the item's max stack size.
func CanItemQuickReplace(s *Slot, st item.Stack, sizeMatters bool) bool {
	if s == nil || !s.HasItem() {
		return true
	}
	cur := s.Item()
	if !item.SameItemSameComponents(st, cur) {
		return false
	}
	n := cur.Count
	if !sizeMatters {
		n += st.Count
	}
	return n <= s.catalog.MaxStackSize(st)
}

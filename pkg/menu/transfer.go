package menu

import "github.com/go-mclib/menu/pkg/item"

// MoveItemStackTo moves as much of stack as possible into the slots
// [start, end), walking backwards when reverse is set. Matching stacks are
// topped up first, then the first empty slot that accepts the stack
// receives what it can hold. stack keeps whatever did not move. It reports
// whether any slot changed.
func (m *Menu) MoveItemStackTo(stack *item.Stack, start, end int, reverse bool) bool {
	changed := false
	indexes := func(yield func(int) bool) {
		if reverse {
			for i := end - 1; i >= start; i-- {
				if !yield(i) {
					return
				}
			}
			return
		}
		for i := start; i < end; i++ {
			if !yield(i) {
				return
			}
		}
	}

	if m.catalog.Stackable(*stack) {
		for i := range indexes {
			if stack.IsEmpty() {
				break
			}
			s := m.Slot(i)
			cur := s.Item()
			if cur.IsEmpty() || !item.SameItemSameComponents(*stack, cur) {
				continue
			}
			space := s.MaxStackSizeFor(cur) - cur.Count
			if space <= 0 {
				continue
			}
			n := min(space, stack.Count)
			stack.Shrink(n)
			cur.Grow(n)
			s.Set(cur)
			changed = true
		}
	}

	if stack.IsEmpty() {
		return changed
	}
	for i := range indexes {
		s := m.Slot(i)
		if s.HasItem() || !s.MayPlace(*stack) {
			continue
		}
		s.Set(stack.Split(s.MaxStackSizeFor(*stack)))
		changed = true
		break
	}
	return changed
}

package menu

import (
	"math"

	"github.com/go-mclib/menu/pkg/container"
	"github.com/go-mclib/menu/pkg/item"
)

// NoLimit is passed as a take limit when the caller accepts any amount.
const NoLimit = math.MaxInt32

// Slot binds one position of a container into a menu. The container is
// shared: the slot never owns it.
type Slot struct {
	index     int
	container container.Container
	pos       int
	maxStack  int
	catalog   *item.Catalog

	placeFilter  func(s item.Stack) bool
	pickupFilter func(p Participant) bool
	onTake       []func(p Participant, s item.Stack)
}

type SlotOption func(*Slot)

// WithMaxStackSize caps the slot below its container's limit.
func WithMaxStackSize(n int) SlotOption {
	return func(s *Slot) { s.maxStack = n }
}

// WithPlaceFilter restricts which stacks may be placed into the slot.
func WithPlaceFilter(f func(s item.Stack) bool) SlotOption {
	return func(s *Slot) { s.placeFilter = f }
}

// WithPickupFilter restricts who may take from the slot.
func WithPickupFilter(f func(p Participant) bool) SlotOption {
	return func(s *Slot) { s.pickupFilter = f }
}

// WithTakeHook runs f whenever a participant takes items out of the slot.
func WithTakeHook(f func(p Participant, s item.Stack)) SlotOption {
	return func(s *Slot) { s.onTake = append(s.onTake, f) }
}

// NewSlot creates a slot for position pos of c. The index is assigned when
// the slot is added to a menu.
func NewSlot(c container.Container, pos int, opts ...SlotOption) *Slot {
	s := &Slot{index: -1, container: c, pos: pos}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Index is the slot's position in its menu.
func (s *Slot) Index() int { return s.index }

func (s *Slot) Container() container.Container { return s.container }

// ContainerSlot is the slot's position inside its container.
func (s *Slot) ContainerSlot() int { return s.pos }

func (s *Slot) Item() item.Stack {
	st := s.container.Item(s.pos)
	if st.IsEmpty() {
		return item.Empty
	}
	return st
}

func (s *Slot) HasItem() bool { return !s.Item().IsEmpty() }

// Set replaces the slot contents and marks the container changed.
func (s *Slot) Set(st item.Stack) {
	s.container.SetItem(s.pos, st.Copy())
	s.SetChanged()
}

func (s *Slot) SetChanged() { s.container.SetChanged() }

func (s *Slot) MayPlace(st item.Stack) bool {
	if s.placeFilter == nil {
		return true
	}
	return s.placeFilter(st)
}

func (s *Slot) MayPickup(p Participant) bool {
	if s.pickupFilter == nil {
		return true
	}
	return s.pickupFilter(p)
}

// MaxStackSize is the slot limit regardless of item.
func (s *Slot) MaxStackSize() int {
	if s.maxStack > 0 {
		return min(s.maxStack, s.container.MaxStackSize())
	}
	return s.container.MaxStackSize()
}

// MaxStackSizeFor is the most of st this slot can hold.
func (s *Slot) MaxStackSizeFor(st item.Stack) int {
	return min(s.MaxStackSize(), s.catalog.MaxStackSize(st))
}

// OnTake runs the take hooks.
func (s *Slot) OnTake(p Participant, st item.Stack) {
	for _, f := range s.onTake {
		f(p, st)
	}
}

func (s *Slot) allowModification(p Participant) bool {
	return s.MayPickup(p) && s.MayPlace(s.Item())
}

// Remove splits up to n items out of the slot without any checks.
func (s *Slot) Remove(n int) item.Stack {
	return container.RemoveItem(s.container, s.pos, n)
}

// TryRemove takes up to min(n, limit) items for p. A slot that p may take
// from but not place into refuses when limit would leave part of its stack
// behind.
func (s *Slot) TryRemove(n, limit int, p Participant) (item.Stack, bool) {
	if !s.MayPickup(p) {
		return item.Empty, false
	}
	if !s.allowModification(p) && limit < s.Item().Count {
		return item.Empty, false
	}
	taken := s.Remove(min(n, limit))
	if taken.IsEmpty() {
		return item.Empty, false
	}
	if s.Item().IsEmpty() {
		s.Set(item.Empty)
	}
	return taken, true
}

// SafeTake is TryRemove followed by the take hooks.
func (s *Slot) SafeTake(n, limit int, p Participant) item.Stack {
	taken, ok := s.TryRemove(n, limit, p)
	if ok {
		s.OnTake(p, taken)
	}
	return taken
}

// SafeInsert moves up to n items of st into the slot without exceeding
// MaxStackSizeFor and returns what remains of st.
func (s *Slot) SafeInsert(st item.Stack, n int) item.Stack {
	if st.IsEmpty() || !s.MayPlace(st) {
		return st
	}
	cur := s.Item()
	k := min(n, st.Count, s.MaxStackSizeFor(st)-cur.Count)
	if k <= 0 {
		return st
	}
	if cur.IsEmpty() {
		s.Set(st.Split(k))
	} else if item.SameItemSameComponents(cur, st) {
		st.Shrink(k)
		cur.Grow(k)
		s.Set(cur)
	}
	return st
}

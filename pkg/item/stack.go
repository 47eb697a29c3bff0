package item

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/go-mclib/data/pkg/data/items"
)

// Kind is an item registry ID. Air (0) is never a real stack.
type Kind int32

const Air Kind = 0

// Component is one data component attached to a stack, keyed by its registry ID.
type Component struct {
	ID   int32  `json:"id"`
	Data []byte `json:"data,omitempty"`
}

// Stack is an item stack value. The zero value is the empty stack.
//
// Stacks are plain values: assigning one copies Kind and Count but shares the
// Components backing array, so code that keeps a stack across a boundary
// (remote mirror, carried item) must call Copy.
type Stack struct {
	Kind       Kind        `json:"kind"`
	Count      int         `json:"count"`
	Components []Component `json:"components,omitempty"`
}

// Empty is the distinguished empty stack.
var Empty = Stack{}

// New returns a stack of count items of the given kind.
func New(kind Kind, count int, components ...Component) Stack {
	s := Stack{Kind: kind, Count: count}
	if len(components) > 0 {
		s.Components = normalizeComponents(components)
	}
	return s.normalize()
}

func normalizeComponents(cs []Component) []Component {
	out := make([]Component, len(cs))
	for i, c := range cs {
		out[i] = Component{ID: c.ID, Data: bytes.Clone(c.Data)}
	}
	slices.SortStableFunc(out, func(a, b Component) int { return int(a.ID - b.ID) })
	return out
}

func (s Stack) normalize() Stack {
	if s.IsEmpty() {
		return Empty
	}
	return s
}

// IsEmpty reports whether s holds no items.
func (s Stack) IsEmpty() bool {
	return s.Kind == Air || s.Count <= 0
}

// Copy returns a deep copy of s. Empty stacks copy to Empty.
func (s Stack) Copy() Stack {
	if s.IsEmpty() {
		return Empty
	}
	out := Stack{Kind: s.Kind, Count: s.Count}
	if len(s.Components) > 0 {
		out.Components = make([]Component, len(s.Components))
		for i, c := range s.Components {
			out.Components[i] = Component{ID: c.ID, Data: bytes.Clone(c.Data)}
		}
	}
	return out
}

// WithCount returns a copy of s holding n items.
func (s Stack) WithCount(n int) Stack {
	if s.IsEmpty() {
		return Empty
	}
	out := s.Copy()
	out.Count = n
	return out.normalize()
}

// Grow adds n items to s in place.
func (s *Stack) Grow(n int) {
	s.Count += n
	*s = s.normalize()
}

// Shrink removes n items from s in place.
func (s *Stack) Shrink(n int) {
	s.Grow(-n)
}

// Split removes up to n items from s and returns them as a new stack.
func (s *Stack) Split(n int) Stack {
	n = min(n, s.Count)
	if n <= 0 || s.IsEmpty() {
		return Empty
	}
	out := s.WithCount(n)
	s.Shrink(n)
	return out
}

// SameItem reports whether a and b hold the same item kind.
func SameItem(a, b Stack) bool {
	return a.Kind == b.Kind
}

// SameItemSameComponents reports whether a and b could merge into one stack.
func SameItemSameComponents(a, b Stack) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.IsEmpty() && b.IsEmpty() {
		return true
	}
	return slices.EqualFunc(a.Components, b.Components, func(x, y Component) bool {
		return x.ID == y.ID && bytes.Equal(x.Data, y.Data)
	})
}

// Matches reports full value equality: same item, components and count.
// All empty stacks match each other.
func Matches(a, b Stack) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return a.IsEmpty() && b.IsEmpty()
	}
	return a.Count == b.Count && SameItemSameComponents(a, b)
}

func (s Stack) String() string {
	if s.IsEmpty() {
		return "empty"
	}
	name := items.ItemName(int32(s.Kind))
	if name == "" {
		name = fmt.Sprintf("#%d", s.Kind)
	}
	if len(s.Components) > 0 {
		return fmt.Sprintf("%s x%d (+%d components)", name, s.Count, len(s.Components))
	}
	return fmt.Sprintf("%s x%d", name, s.Count)
}

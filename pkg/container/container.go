package container

import (
	"fmt"

	"github.com/go-mclib/menu/pkg/item"
)

// DefaultMaxStackSize is the per-slot limit of ordinary containers.
const DefaultMaxStackSize = 64

// Container is an indexed store of item stacks owned outside any menu.
// Several menus may reference the same container at once.
type Container interface {
	Size() int
	Item(i int) item.Stack
	SetItem(i int, s item.Stack)
	MaxStackSize() int
	// SetChanged notifies the container that its contents were modified.
	SetChanged()
}

// Storage is a container that can absorb stacks without a target index,
// like a player's general inventory.
type Storage interface {
	Container
	// Add inserts as much of s as fits and returns what is left over.
	Add(s item.Stack) item.Stack
}

// Simple is a fixed-size container backed by a slice.
type Simple struct {
	items    []item.Stack
	maxStack int
	changes  int

	onChange []func(c Container)
}

// NewSimple creates an empty container with size slots.
func NewSimple(size int) *Simple {
	return &Simple{
		items:    make([]item.Stack, size),
		maxStack: DefaultMaxStackSize,
	}
}

func (c *Simple) Size() int { return len(c.items) }

func (c *Simple) Item(i int) item.Stack {
	c.check(i)
	return c.items[i]
}

func (c *Simple) SetItem(i int, s item.Stack) {
	c.check(i)
	if s.IsEmpty() {
		s = item.Empty
	}
	c.items[i] = s
}

func (c *Simple) MaxStackSize() int { return c.maxStack }

// SetMaxStackSize lowers or raises the per-slot limit.
func (c *Simple) SetMaxStackSize(n int) { c.maxStack = n }

func (c *Simple) SetChanged() {
	c.changes++
	for _, cb := range c.onChange {
		cb(c)
	}
}

// Changes returns how many times SetChanged has been called.
func (c *Simple) Changes() int { return c.changes }

// OnChange registers a callback run on every SetChanged.
func (c *Simple) OnChange(cb func(c Container)) {
	c.onChange = append(c.onChange, cb)
}

func (c *Simple) check(i int) {
	if i < 0 || i >= len(c.items) {
		panic(fmt.Sprintf("container: slot %d out of range [0, %d)", i, len(c.items)))
	}
}

// RemoveItem splits up to n items out of slot i of c.
func RemoveItem(c Container, i, n int) item.Stack {
	s := c.Item(i)
	if s.IsEmpty() || n <= 0 {
		return item.Empty
	}
	taken := s.Split(n)
	c.SetItem(i, s)
	c.SetChanged()
	return taken
}

// IsEmpty reports whether every slot of c is empty.
func IsEmpty(c Container) bool {
	for i := range c.Size() {
		if !c.Item(i).IsEmpty() {
			return false
		}
	}
	return true
}

// Count sums the items of the given kind in c.
func Count(c Container, kind item.Kind) int {
	n := 0
	for i := range c.Size() {
		if s := c.Item(i); !s.IsEmpty() && s.Kind == kind {
			n += s.Count
		}
	}
	return n
}

// AnalogSignal computes the 0-15 comparator output of a container: 0 when
// empty, otherwise 1 plus the average fill ratio scaled to 14.
func AnalogSignal(c Container, catalog *item.Catalog) int {
	if c == nil || c.Size() == 0 {
		return 0
	}
	filled := 0
	var ratio float64
	for i := range c.Size() {
		s := c.Item(i)
		if s.IsEmpty() {
			continue
		}
		ratio += float64(s.Count) / float64(min(c.MaxStackSize(), catalog.MaxStackSize(s)))
		filled++
	}
	ratio /= float64(c.Size())
	signal := int(ratio * 14)
	if filled > 0 {
		signal++
	}
	return signal
}

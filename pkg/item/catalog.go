package item

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-mclib/data/pkg/data/items"
	"gopkg.in/yaml.v3"
)

// DefaultMaxStackSize applies to kinds the catalog does not define.
const DefaultMaxStackSize = 64

var ErrUnknownItem = errors.New("unknown item")

// Def describes the properties of one item kind the engine cares about.
type Def struct {
	Kind         Kind   `yaml:"id"`
	Name         string `yaml:"name"`
	MaxStackSize int    `yaml:"max_stack_size"`
	BurnTicks    int    `yaml:"burn_ticks"`
	Smeltable    bool   `yaml:"smeltable"`
}

// Catalog is an immutable item property table. Build one with NewCatalog or
// LoadCatalog and pass it to the components that need it.
type Catalog struct {
	defs   map[Kind]Def
	byName map[string]Kind
}

// NewCatalog builds a catalog from defs. Later defs for the same kind win.
func NewCatalog(defs ...Def) *Catalog {
	c := &Catalog{
		defs:   make(map[Kind]Def, len(defs)),
		byName: make(map[string]Kind, len(defs)),
	}
	for _, d := range defs {
		if d.MaxStackSize <= 0 {
			d.MaxStackSize = DefaultMaxStackSize
		}
		c.defs[d.Kind] = d
		if d.Name != "" {
			c.byName[d.Name] = d.Kind
		}
	}
	return c
}

type catalogFile struct {
	Items []Def `yaml:"items"`
}

// LoadCatalog reads a YAML catalog. Entries without an id are resolved by name
// through the registry.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	for i, d := range f.Items {
		if d.Kind != Air {
			continue
		}
		id := items.ItemID(d.Name)
		if id <= 0 {
			return nil, fmt.Errorf("catalog: entry %d: %w %q", i, ErrUnknownItem, d.Name)
		}
		f.Items[i].Kind = Kind(id)
	}
	return NewCatalog(f.Items...), nil
}

// Def returns the definition for kind.
func (c *Catalog) Def(kind Kind) (Def, bool) {
	if c == nil {
		return Def{}, false
	}
	d, ok := c.defs[kind]
	return d, ok
}

// Lookup resolves a name to a kind, consulting the catalog first and the
// registry second.
func (c *Catalog) Lookup(name string) (Kind, error) {
	if c != nil {
		if k, ok := c.byName[name]; ok {
			return k, nil
		}
	}
	if id := items.ItemID(name); id > 0 {
		return Kind(id), nil
	}
	return Air, fmt.Errorf("%w %q", ErrUnknownItem, name)
}

// MaxStackSize returns the intrinsic max stack size of s.
func (c *Catalog) MaxStackSize(s Stack) int {
	if d, ok := c.Def(s.Kind); ok {
		return d.MaxStackSize
	}
	return DefaultMaxStackSize
}

// Stackable reports whether more than one of s fits in a stack.
func (c *Catalog) Stackable(s Stack) bool {
	return c.MaxStackSize(s) > 1
}

// BurnTicks returns how long one item of s burns as furnace fuel.
func (c *Catalog) BurnTicks(s Stack) int {
	if s.IsEmpty() {
		return 0
	}
	d, _ := c.Def(s.Kind)
	return d.BurnTicks
}

// IsFuel reports whether s can be placed in a fuel slot.
func (c *Catalog) IsFuel(s Stack) bool {
	return c.BurnTicks(s) > 0
}

// Smeltable reports whether s is accepted as furnace input.
func (c *Catalog) Smeltable(s Stack) bool {
	if s.IsEmpty() {
		return false
	}
	d, _ := c.Def(s.Kind)
	return d.Smeltable
}

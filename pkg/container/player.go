package container

import "github.com/go-mclib/menu/pkg/item"

// Abilities holds the privilege flags a menu consults.
type Abilities struct {
	// Instabuild is creative-mode unrestricted placement.
	Instabuild bool
}

// Drop records a stack that left the player's hands into the world.
type Drop struct {
	Stack  item.Stack
	Thrown bool
}

// Player is a minimal participant: a name, abilities, a general inventory
// and drop bookkeeping.
type Player struct {
	Abilities Abilities

	name         string
	inventory    *Inventory
	dead         bool
	disconnected bool
	drops        []Drop

	onDrop []func(d Drop)
}

// NewPlayer creates a live, connected player with an empty inventory.
func NewPlayer(name string, catalog *item.Catalog) *Player {
	return &Player{name: name, inventory: NewInventory(catalog)}
}

func (p *Player) Name() string       { return p.name }
func (p *Player) Instabuild() bool   { return p.Abilities.Instabuild }
func (p *Player) Inventory() Storage { return p.inventory }
func (p *Player) Alive() bool        { return !p.dead }
func (p *Player) Disconnected() bool { return p.disconnected }

// PlayerInventory returns the concrete inventory for slot layout access.
func (p *Player) PlayerInventory() *Inventory { return p.inventory }

// Kill marks the player dead.
func (p *Player) Kill() { p.dead = true }

// Disconnect marks the player as gone.
func (p *Player) Disconnect() { p.disconnected = true }

func (p *Player) Drop(s item.Stack, thrown bool) {
	if s.IsEmpty() {
		return
	}
	d := Drop{Stack: s.Copy(), Thrown: thrown}
	p.drops = append(p.drops, d)
	for _, cb := range p.onDrop {
		cb(d)
	}
}

// Drops returns every stack dropped so far.
func (p *Player) Drops() []Drop { return p.drops }

// OnDrop registers a callback for every drop.
func (p *Player) OnDrop(cb func(d Drop)) {
	p.onDrop = append(p.onDrop, cb)
}

package menus

import (
	"fmt"

	"github.com/go-mclib/menu/pkg/container"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
)

// Chest is the behavior of a generic rows x 9 container menu.
type Chest struct {
	Rows int
	// Valid reports whether p may keep the chest open. Nil means always.
	Valid func(p menu.Participant) bool
}

// ChestType returns the registry key of a chest with the given rows.
func ChestType(rows int) menu.Type {
	return menu.Type(fmt.Sprintf("minecraft:generic_9x%d", rows))
}

// NewChest builds a chest menu over chest and the player inventory inv.
func NewChest(id int, catalog *item.Catalog, chest, inv container.Container, rows int, opts ...menu.Option) (*menu.Menu, error) {
	if rows < 1 || rows > 6 {
		return nil, fmt.Errorf("menus: chest rows %d out of range [1, 6]", rows)
	}
	if err := checkSize(chest, rows*9); err != nil {
		return nil, err
	}
	if err := checkSize(inv, playerSlots); err != nil {
		return nil, err
	}
	b := &Chest{Rows: rows}
	m := menu.New(ChestType(rows), id, catalog, append([]menu.Option{menu.WithBehavior(b)}, opts...)...)
	m.AddContainerSlots(chest, 0, rows*9)
	addPlayerInventory(m, inv)
	return m, nil
}

// QuickMoveStack moves chest slots into the inventory, last slot first, and
// inventory slots into the chest.
func (c *Chest) QuickMoveStack(m *menu.Menu, _ menu.Participant, index int) item.Stack {
	n := c.Rows * 9
	return quickMove(m, index, func(st *item.Stack) bool {
		if index < n {
			return m.MoveItemStackTo(st, n, m.SlotCount(), true)
		}
		return m.MoveItemStackTo(st, 0, n, false)
	})
}

func (c *Chest) StillValid(p menu.Participant) bool {
	return c.Valid == nil || c.Valid(p)
}

package container

import "github.com/go-mclib/menu/pkg/item"

const (
	HotbarStart   = 0
	HotbarEnd     = 9
	MainStart     = 9
	MainEnd       = 36
	ArmorFeet     = 36
	ArmorLegs     = 37
	ArmorChest    = 38
	ArmorHead     = 39
	Offhand       = 40
	InventorySize = 41
)

// Inventory is a player's general storage: hotbar 0-8, main 9-35, armor
// 36-39 (feet to head) and the offhand at 40.
type Inventory struct {
	*Simple
	catalog  *item.Catalog
	Selected int
}

// NewInventory creates an empty player inventory.
func NewInventory(catalog *item.Catalog) *Inventory {
	return &Inventory{Simple: NewSimple(InventorySize), catalog: catalog}
}

// Add merges s into matching stacks of the selected slot, the offhand and then
// hotbar and main storage in index order, then fills empty storage slots.
// It returns what did not fit.
func (inv *Inventory) Add(s item.Stack) item.Stack {
	if s.IsEmpty() {
		return item.Empty
	}
	s = s.Copy()
	changed := false

	if inv.catalog.Stackable(s) {
		order := make([]int, 0, MainEnd+2)
		order = append(order, inv.Selected, Offhand)
		for i := HotbarStart; i < MainEnd; i++ {
			if i != inv.Selected {
				order = append(order, i)
			}
		}
		for _, i := range order {
			if s.IsEmpty() {
				break
			}
			cur := inv.Item(i)
			if cur.IsEmpty() || !item.SameItemSameComponents(cur, s) {
				continue
			}
			space := min(inv.catalog.MaxStackSize(cur), inv.MaxStackSize()) - cur.Count
			if space <= 0 {
				continue
			}
			n := min(space, s.Count)
			cur.Grow(n)
			s.Shrink(n)
			inv.SetItem(i, cur)
			changed = true
		}
	}

	for i := HotbarStart; i < MainEnd && !s.IsEmpty(); i++ {
		if !inv.Item(i).IsEmpty() {
			continue
		}
		limit := min(inv.catalog.MaxStackSize(s), inv.MaxStackSize())
		inv.SetItem(i, s.Split(limit))
		changed = true
	}

	if changed {
		inv.SetChanged()
	}
	return s
}

// FreeSlot returns the first empty hotbar or main slot, or -1.
func (inv *Inventory) FreeSlot() int {
	for i := HotbarStart; i < MainEnd; i++ {
		if inv.Item(i).IsEmpty() {
			return i
		}
	}
	return -1
}

package menus

import (
	"github.com/go-mclib/menu/pkg/container"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
)

const FurnaceType menu.Type = "minecraft:furnace"

// Furnace slot layout.
const (
	FurnaceInput  = 0
	FurnaceFuel   = 1
	FurnaceResult = 2

	furnaceSlots    = 3
	furnaceInvStart = 3
	furnaceInvEnd   = furnaceInvStart + playerSlots
	furnaceHotbar   = furnaceInvEnd - 9
)

// Furnace data fields.
const (
	FurnaceLitTime = iota
	FurnaceLitDuration
	FurnaceCookingProgress
	FurnaceCookingTotal

	furnaceDataCount
)

// Furnace is the behavior of a furnace menu.
type Furnace struct {
	catalog *item.Catalog
	data    menu.ContainerData
}

// NewFurnace builds a furnace menu over a 3-slot furnace container, its
// four data values and the player inventory inv.
func NewFurnace(id int, catalog *item.Catalog, furnace container.Container, data menu.ContainerData, inv container.Container, opts ...menu.Option) (*menu.Menu, error) {
	if err := checkSize(furnace, furnaceSlots); err != nil {
		return nil, err
	}
	if err := checkData(data, furnaceDataCount); err != nil {
		return nil, err
	}
	if err := checkSize(inv, playerSlots); err != nil {
		return nil, err
	}
	b := &Furnace{catalog: catalog, data: data}
	m := menu.New(FurnaceType, id, catalog, append([]menu.Option{menu.WithBehavior(b)}, opts...)...)
	m.AddSlot(menu.NewSlot(furnace, FurnaceInput))
	m.AddSlot(menu.NewSlot(furnace, FurnaceFuel, menu.WithPlaceFilter(catalog.IsFuel)))
	m.AddSlot(menu.NewSlot(furnace, FurnaceResult, menu.WithPlaceFilter(func(item.Stack) bool { return false })))
	addPlayerInventory(m, inv)
	m.AddDataSlots(data)
	return m, nil
}

func (f *Furnace) QuickMoveStack(m *menu.Menu, p menu.Participant, index int) item.Stack {
	moved := quickMove(m, index, func(st *item.Stack) bool {
		switch {
		case index == FurnaceResult:
			return m.MoveItemStackTo(st, furnaceInvStart, furnaceInvEnd, true)
		case index == FurnaceInput || index == FurnaceFuel:
			return m.MoveItemStackTo(st, furnaceInvStart, furnaceInvEnd, false)
		case f.catalog.Smeltable(*st):
			return m.MoveItemStackTo(st, FurnaceInput, FurnaceInput+1, false)
		case f.catalog.IsFuel(*st):
			return m.MoveItemStackTo(st, FurnaceFuel, FurnaceFuel+1, false)
		case index < furnaceHotbar:
			return m.MoveItemStackTo(st, furnaceHotbar, furnaceInvEnd, false)
		default:
			return m.MoveItemStackTo(st, furnaceInvStart, furnaceHotbar, false)
		}
	})
	if !moved.IsEmpty() {
		s := m.Slot(index)
		s.OnTake(p, moved.WithCount(moved.Count-s.Item().Count))
	}
	return moved
}

func (f *Furnace) StillValid(menu.Participant) bool { return true }

// Lit reports whether fuel is burning.
func (f *Furnace) Lit() bool { return f.data.Get(FurnaceLitTime) > 0 }

// BurnProgress scales cooking progress to the 24 pixel arrow.
func (f *Furnace) BurnProgress() int {
	progress, total := f.data.Get(FurnaceCookingProgress), f.data.Get(FurnaceCookingTotal)
	if total == 0 || progress == 0 {
		return 0
	}
	return progress * 24 / total
}

// LitProgress scales the remaining burn time to the 13 pixel flame.
func (f *Furnace) LitProgress() int {
	duration := f.data.Get(FurnaceLitDuration)
	if duration == 0 {
		duration = 200
	}
	return f.data.Get(FurnaceLitTime) * 13 / duration
}

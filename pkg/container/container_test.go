package container

import (
	"testing"

	"github.com/go-mclib/menu/pkg/item"
)

const (
	stone item.Kind = 1
	sword item.Kind = 2
)

func testCatalog() *item.Catalog {
	return item.NewCatalog(
		item.Def{Kind: stone, Name: "stone", MaxStackSize: 64},
		item.Def{Kind: sword, Name: "sword", MaxStackSize: 1},
	)
}

func TestSimpleChangeNotification(t *testing.T) {
	c := NewSimple(3)
	calls := 0
	c.OnChange(func(Container) { calls++ })

	c.SetItem(1, item.New(stone, 5))
	c.SetChanged()

	if calls != 1 || c.Changes() != 1 {
		t.Errorf("change callbacks = %d, Changes() = %d, want 1 and 1", calls, c.Changes())
	}
	if got := c.Item(1).Count; got != 5 {
		t.Errorf("Item(1).Count = %d, want 5", got)
	}
}

func TestSimpleOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Item(3) on a 3-slot container did not panic")
		}
	}()
	NewSimple(3).Item(3)
}

func TestRemoveItem(t *testing.T) {
	c := NewSimple(1)
	c.SetItem(0, item.New(stone, 10))

	got := RemoveItem(c, 0, 4)
	if got.Count != 4 || c.Item(0).Count != 6 {
		t.Errorf("RemoveItem(4) = %d, left %d, want 4 and 6", got.Count, c.Item(0).Count)
	}
	got = RemoveItem(c, 0, 10)
	if got.Count != 6 || !c.Item(0).IsEmpty() {
		t.Errorf("RemoveItem(10) = %d, left %v, want 6 and empty", got.Count, c.Item(0))
	}
}

func TestInventoryAddMergesThenFills(t *testing.T) {
	inv := NewInventory(testCatalog())
	inv.SetItem(MainStart, item.New(stone, 60))

	rest := inv.Add(item.New(stone, 10))
	if !rest.IsEmpty() {
		t.Fatalf("Add returned remainder %v, want empty", rest)
	}
	if got := inv.Item(MainStart).Count; got != 64 {
		t.Errorf("merged slot count = %d, want 64", got)
	}
	if got := inv.Item(HotbarStart).Count; got != 6 {
		t.Errorf("first free slot count = %d, want 6", got)
	}
	if got := Count(inv, stone); got != 70 {
		t.Errorf("Count(stone) = %d, want 70", got)
	}
}

func TestInventoryAddUnstackable(t *testing.T) {
	inv := NewInventory(testCatalog())
	rest := inv.Add(item.New(sword, 3))
	if !rest.IsEmpty() {
		t.Fatalf("Add(3 swords) left %v", rest)
	}
	for i := range 3 {
		if got := inv.Item(i).Count; got != 1 {
			t.Errorf("slot %d count = %d, want 1", i, got)
		}
	}
}

func TestInventoryAddFull(t *testing.T) {
	inv := NewInventory(testCatalog())
	for i := HotbarStart; i < MainEnd; i++ {
		inv.SetItem(i, item.New(sword, 1))
	}
	rest := inv.Add(item.New(stone, 5))
	if rest.Count != 5 {
		t.Errorf("Add into full inventory left %d, want 5", rest.Count)
	}
	if inv.FreeSlot() != -1 {
		t.Errorf("FreeSlot() = %d, want -1", inv.FreeSlot())
	}
}

func TestAnalogSignal(t *testing.T) {
	cat := testCatalog()
	tests := []struct {
		name string
		fill []item.Stack
		want int
	}{
		{"empty", nil, 0},
		{"one item", []item.Stack{item.New(stone, 1)}, 1},
		{"half full", []item.Stack{item.New(stone, 64), item.Empty}, 8},
		{"full", []item.Stack{item.New(stone, 64), item.New(sword, 1)}, 15},
	}
	for _, tt := range tests {
		c := NewSimple(2)
		for i, s := range tt.fill {
			c.SetItem(i, s)
		}
		if got := AnalogSignal(c, cat); got != tt.want {
			t.Errorf("%s: AnalogSignal = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestPlayerDrops(t *testing.T) {
	p := NewPlayer("alex", testCatalog())
	var seen []Drop
	p.OnDrop(func(d Drop) { seen = append(seen, d) })

	p.Drop(item.Empty, true)
	p.Drop(item.New(stone, 2), true)

	if len(p.Drops()) != 1 || len(seen) != 1 {
		t.Fatalf("drops = %d, callbacks = %d, want 1 and 1", len(p.Drops()), len(seen))
	}
	if !seen[0].Thrown || seen[0].Stack.Count != 2 {
		t.Errorf("drop = %+v, want thrown stack of 2", seen[0])
	}
}

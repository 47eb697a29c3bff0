package menu

import "fmt"

// ContainerData is an indexed group of integers owned by a container, such
// as furnace progress counters.
type ContainerData interface {
	Get(i int) int
	Set(i, v int)
	Count() int
}

// SimpleContainerData is a fixed-size ContainerData.
type SimpleContainerData []int

func NewSimpleContainerData(n int) SimpleContainerData { return make(SimpleContainerData, n) }

func (d SimpleContainerData) Get(i int) int { return d[i] }
func (d SimpleContainerData) Set(i, v int)  { d[i] = v }
func (d SimpleContainerData) Count() int    { return len(d) }

// DataSlot is one integer field exposed by a menu. The dirty flag records
// whether the value changed since the last CheckAndClearUpdateFlag.
type DataSlot struct {
	get  func() int
	set  func(int)
	prev int
}

// Standalone returns a data slot holding its own value.
func Standalone() *DataSlot {
	var v int
	return &DataSlot{
		get: func() int { return v },
		set: func(n int) { v = n },
	}
}

// ForContainer binds a data slot to value i of d.
func ForContainer(d ContainerData, i int) *DataSlot {
	if i < 0 || i >= d.Count() {
		panic(fmt.Sprintf("menu: data index %d out of range [0, %d)", i, d.Count()))
	}
	return &DataSlot{
		get: func() int { return d.Get(i) },
		set: func(n int) { d.Set(i, n) },
	}
}

func (d *DataSlot) Get() int  { return d.get() }
func (d *DataSlot) Set(v int) { d.set(v) }

// CheckAndClearUpdateFlag reports whether the value changed since the
// previous call.
func (d *DataSlot) CheckAndClearUpdateFlag() bool {
	v := d.get()
	changed := v != d.prev
	d.prev = v
	return changed
}

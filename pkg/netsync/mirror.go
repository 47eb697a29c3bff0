package netsync

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/go-mclib/data/pkg/data/packet_ids"
	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
	jp "github.com/go-mclib/protocol/java_protocol"
)

// Mirror applies clientbound container packets to a display-side menu with
// the same layout as the authoritative one.
type Mirror struct {
	Logger *log.Logger

	mu      sync.RWMutex
	menu    *menu.Menu
	stateID int

	onSlotUpdate []func(index int, s item.Stack)
	onDataUpdate []func(index, value int)
}

func NewMirror(display *menu.Menu, logger *log.Logger) *Mirror {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Mirror{Logger: logger, menu: display}
}

// events

// OnSlotUpdate registers a callback for every slot the server writes.
// Index -1 is the carried stack.
func (mi *Mirror) OnSlotUpdate(cb func(index int, s item.Stack)) {
	mi.onSlotUpdate = append(mi.onSlotUpdate, cb)
}

func (mi *Mirror) OnDataUpdate(cb func(index, value int)) {
	mi.onDataUpdate = append(mi.onDataUpdate, cb)
}

// StateID returns the last state id received.
func (mi *Mirror) StateID() int {
	mi.mu.RLock()
	defer mi.mu.RUnlock()
	return mi.stateID
}

// Items returns the mirrored slot contents.
func (mi *Mirror) Items() []item.Stack {
	mi.mu.RLock()
	defer mi.mu.RUnlock()
	return mi.menu.Items()
}

func (mi *Mirror) Carried() item.Stack {
	mi.mu.RLock()
	defer mi.mu.RUnlock()
	return mi.menu.Carried()
}

// Data returns the mirrored value of data slot i.
func (mi *Mirror) Data(i int) int {
	mi.mu.RLock()
	defer mi.mu.RUnlock()
	return mi.menu.DataSlot(i).Get()
}

func (mi *Mirror) HandlePacket(pkt *jp.WirePacket) {
	switch pkt.PacketID {
	case packet_ids.S2CContainerSetContentID:
		var d packets.S2CContainerSetContent
		if err := pkt.ReadInto(&d); err != nil {
			mi.Logger.Println("netsync: failed to parse container set content:", err)
			return
		}
		mi.ApplyContent(&d)
	case packet_ids.S2CContainerSetSlotID:
		var d packets.S2CContainerSetSlot
		if err := pkt.ReadInto(&d); err != nil {
			mi.Logger.Println("netsync: failed to parse container set slot:", err)
			return
		}
		mi.ApplySlot(&d)
	case packet_ids.S2CContainerSetDataID:
		var d packets.S2CContainerSetData
		if err := pkt.ReadInto(&d); err != nil {
			mi.Logger.Println("netsync: failed to parse container set data:", err)
			return
		}
		mi.ApplyData(&d)
	}
}

// WritePacket lets a Mirror stand in for the connection of an in-process
// client: packets written to it are applied directly.
func (mi *Mirror) WritePacket(p jp.Packet) error {
	switch d := p.(type) {
	case *packets.S2CContainerSetContent:
		mi.ApplyContent(d)
	case *packets.S2CContainerSetSlot:
		mi.ApplySlot(d)
	case *packets.S2CContainerSetData:
		mi.ApplyData(d)
	default:
		return fmt.Errorf("netsync: mirror cannot apply %T", p)
	}
	return nil
}

func (mi *Mirror) ApplyContent(d *packets.S2CContainerSetContent) {
	if int(d.WindowId) != mi.menu.ContainerID() {
		return
	}

	mi.mu.Lock()
	count := min(len(d.Slots), mi.menu.SlotCount())
	// slots past count stay empty if the server sent fewer
	items := make([]item.Stack, mi.menu.SlotCount())
	for i := range count {
		items[i] = DecodeSlot(d.Slots[i])
	}
	mi.stateID = int(d.StateId)
	mi.menu.InitializeContents(mi.stateID, items, DecodeSlot(d.CarriedItem))
	mi.mu.Unlock()

	for i := range count {
		for _, cb := range mi.onSlotUpdate {
			cb(i, items[i])
		}
	}
}

func (mi *Mirror) ApplySlot(d *packets.S2CContainerSetSlot) {
	st := DecodeSlot(d.SlotData)

	// WindowId -1 with Slot -1 means cursor-only update
	if int32(d.WindowId) == -1 && int16(d.Slot) == -1 {
		mi.mu.Lock()
		mi.stateID = int(d.StateId)
		mi.menu.SetCarried(st)
		mi.mu.Unlock()
		for _, cb := range mi.onSlotUpdate {
			cb(-1, st)
		}
		return
	}

	if int(d.WindowId) != mi.menu.ContainerID() {
		return
	}
	idx := int(d.Slot)
	if idx < 0 || idx >= mi.menu.SlotCount() {
		mi.Logger.Printf("netsync: set slot %d out of range for %d slots", idx, mi.menu.SlotCount())
		return
	}

	mi.mu.Lock()
	mi.stateID = int(d.StateId)
	mi.menu.SetItem(idx, mi.stateID, st)
	mi.mu.Unlock()

	for _, cb := range mi.onSlotUpdate {
		cb(idx, st)
	}
}

func (mi *Mirror) ApplyData(d *packets.S2CContainerSetData) {
	if int(d.WindowId) != mi.menu.ContainerID() {
		return
	}
	idx, v := int(d.Property), int(d.Value)
	if idx < 0 || idx >= mi.menu.DataCount() {
		return
	}

	mi.mu.Lock()
	mi.menu.SetData(idx, v)
	mi.mu.Unlock()

	for _, cb := range mi.onDataUpdate {
		cb(idx, v)
	}
}

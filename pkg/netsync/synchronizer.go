// Package netsync connects menus to the wire: it pushes authoritative menu
// state as clientbound container packets, applies serverbound clicks to a
// menu and mirrors clientbound packets into a display-side menu.
package netsync

import (
	"io"
	"log"

	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
	jp "github.com/go-mclib/protocol/java_protocol"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

// PacketWriter sends one packet to the peer.
type PacketWriter interface {
	WritePacket(p jp.Packet) error
}

// Synchronizer implements menu.Synchronizer by writing container packets.
// Write failures are logged and otherwise ignored.
type Synchronizer struct {
	Logger *log.Logger
	w      PacketWriter
}

var _ menu.Synchronizer = (*Synchronizer)(nil)

func NewSynchronizer(w PacketWriter, logger *log.Logger) *Synchronizer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Synchronizer{Logger: logger, w: w}
}

func (s *Synchronizer) SendInitialData(m *menu.Menu, slots []item.Stack, carried item.Stack, data []int) {
	raw := make([]ns.Slot, len(slots))
	for i, st := range slots {
		raw[i] = EncodeSlot(st)
	}
	s.write("container set content", &packets.S2CContainerSetContent{
		WindowId:    ns.VarInt(m.ContainerID()),
		StateId:     ns.VarInt(m.StateID()),
		Slots:       raw,
		CarriedItem: EncodeSlot(carried),
	})
	for i, v := range data {
		s.SendDataChange(m, i, v)
	}
}

func (s *Synchronizer) SendSlotChange(m *menu.Menu, index int, st item.Stack) {
	s.write("container set slot", &packets.S2CContainerSetSlot{
		WindowId: ns.VarInt(m.ContainerID()),
		StateId:  ns.VarInt(m.IncrementStateID()),
		Slot:     ns.Int16(index),
		SlotData: EncodeSlot(st),
	})
}

// SendCarriedChange uses the window -1, slot -1 form of the set slot packet.
func (s *Synchronizer) SendCarriedChange(m *menu.Menu, st item.Stack) {
	s.write("carried item", &packets.S2CContainerSetSlot{
		WindowId: -1,
		StateId:  ns.VarInt(m.IncrementStateID()),
		Slot:     -1,
		SlotData: EncodeSlot(st),
	})
}

func (s *Synchronizer) SendDataChange(m *menu.Menu, index, value int) {
	s.write("container set data", &packets.S2CContainerSetData{
		WindowId: ns.VarInt(m.ContainerID()),
		Property: ns.Int16(index),
		Value:    ns.Int16(value),
	})
}

func (s *Synchronizer) write(what string, p jp.Packet) {
	if err := s.w.WritePacket(p); err != nil {
		s.Logger.Println("netsync: failed to send "+what+":", err)
	}
}

package netsync

import (
	"hash/crc32"
	"slices"

	"github.com/go-mclib/menu/pkg/item"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

var crc32c = crc32.MakeTable(crc32.Castagnoli)

// Unpredicted is a hashed slot that matches no stack. A client without local
// prediction reports it so every affected slot is echoed back.
var Unpredicted = ns.HashedSlot{Present: true}

// EncodeSlot converts a stack to its protocol form.
func EncodeSlot(s item.Stack) ns.Slot {
	if s.IsEmpty() {
		return ns.Slot{}
	}
	raw := ns.Slot{
		ItemID: ns.VarInt(s.Kind),
		Count:  ns.VarInt(s.Count),
	}
	if n := len(s.Components); n > 0 {
		raw.Components.Add = slices.Grow(raw.Components.Add, n)[:n]
		for i, c := range s.Components {
			raw.Components.Add[i].ID = ns.VarInt(c.ID)
			raw.Components.Add[i].Data = slices.Clone(c.Data)
		}
	}
	return raw
}

// DecodeSlot converts a protocol slot to a stack. Component removals have
// no representation in a stack and are dropped.
func DecodeSlot(raw ns.Slot) item.Stack {
	if raw.IsEmpty() {
		return item.Empty
	}
	comps := make([]item.Component, 0, len(raw.Components.Add))
	for _, c := range raw.Components.Add {
		comps = append(comps, item.Component{ID: int32(c.ID), Data: c.Data})
	}
	return item.New(item.Kind(raw.ItemID), int(raw.Count), comps...)
}

// HashSlot converts a stack to the hashed form clients use to report their
// predicted slot contents. Component data is replaced with CRC32C hashes.
func HashSlot(s item.Stack) ns.HashedSlot {
	return slotToHashed(EncodeSlot(s))
}

func slotToHashed(s ns.Slot) ns.HashedSlot {
	if s.IsEmpty() {
		return ns.EmptyHashedSlot()
	}
	hs := ns.HashedSlot{
		Present: true,
		ItemID:  s.ItemID,
		Count:   s.Count,
	}
	for _, comp := range s.Components.Add {
		hs.Components.Add = append(hs.Components.Add, ns.HashedComponent{
			ID:   comp.ID,
			Hash: ns.Int32(crc32.Checksum(comp.Data, crc32c)),
		})
	}
	hs.Components.Remove = s.Components.Remove
	return hs
}

// MatchesHashed reports whether the client's hashed prediction h describes s.
func MatchesHashed(s item.Stack, h ns.HashedSlot) bool {
	want := HashSlot(s)
	if want.Present != h.Present {
		return false
	}
	if !want.Present {
		return true
	}
	if want.ItemID != h.ItemID || want.Count != h.Count {
		return false
	}
	if len(want.Components.Add) != len(h.Components.Add) || len(h.Components.Remove) != 0 {
		return false
	}
	for i, c := range want.Components.Add {
		if c.ID != h.Components.Add[i].ID || c.Hash != h.Components.Add[i].Hash {
			return false
		}
	}
	return true
}

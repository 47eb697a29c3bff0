package menu

import "slices"

// Quick-craft headers carried in the low two bits of the button.
const (
	QuickcraftStart    = 0
	QuickcraftContinue = 1
	QuickcraftEnd      = 2
)

// Quick-craft distribution modes carried in bits 2-3 of the button.
const (
	// EvenSplit divides the carried stack evenly across the targets.
	EvenSplit = 0
	// SingleItem places one item per target.
	SingleItem = 1
	// FullStack fills every target to the max stack size. Instabuild only.
	FullStack = 2
)

const (
	quickcraftIdle         = 0
	quickcraftAccumulating = 1
)

type quickcraft struct {
	status  int
	mode    int
	targets []*Slot
}

func QuickcraftHeader(button int) int { return button & 3 }

func QuickcraftModeOf(button int) int { return button >> 2 & 3 }

// QuickcraftMask builds the button value for a header and mode.
func QuickcraftMask(header, mode int) int {
	return header&3 | (mode&3)<<2
}

// IsValidQuickcraftMode reports whether p may drag in the given mode.
func IsValidQuickcraftMode(mode int, p Participant) bool {
	switch mode {
	case EvenSplit, SingleItem:
		return true
	case FullStack:
		return p.Instabuild()
	}
	return false
}

// QuickcraftActive reports whether a drag gesture is in progress.
func (m *Menu) QuickcraftActive() bool { return m.quickcraft.status != quickcraftIdle }

// QuickcraftTargets returns the slot indexes accumulated by the current drag.
func (m *Menu) QuickcraftTargets() []int {
	out := make([]int, len(m.quickcraft.targets))
	for i, s := range m.quickcraft.targets {
		out[i] = s.index
	}
	return out
}

func (m *Menu) resetQuickcraft() {
	m.quickcraft.status = quickcraftIdle
	m.quickcraft.targets = m.quickcraft.targets[:0]
}

func (m *Menu) clickQuickcraft(slot, button int, p Participant) {
	qc := &m.quickcraft
	prev := qc.status
	qc.status = QuickcraftHeader(button)

	switch {
	case (prev != QuickcraftContinue || qc.status != QuickcraftEnd) && prev != qc.status:
		m.resetQuickcraft()
	case m.carried.IsEmpty():
		m.resetQuickcraft()
	case qc.status == QuickcraftStart:
		qc.mode = QuickcraftModeOf(button)
		if !IsValidQuickcraftMode(qc.mode, p) {
			m.resetQuickcraft()
			return
		}
		qc.status = quickcraftAccumulating
		qc.targets = qc.targets[:0]
	case qc.status == QuickcraftContinue:
		if slot < 0 {
			return
		}
		s := m.Slot(slot)
		if m.dragEligible(s, len(qc.targets), false) && !slices.Contains(qc.targets, s) {
			qc.targets = append(qc.targets, s)
		}
	case qc.status == QuickcraftEnd:
		m.commitQuickcraft(p)
	default:
		m.resetQuickcraft()
	}
}

// dragEligible is the target test shared by accumulation and commit. During
// accumulation the carried count must exceed the targets gathered so far,
// at commit it must cover all of them.
func (m *Menu) dragEligible(s *Slot, n int, commit bool) bool {
	carried := m.carried
	if !CanItemQuickReplace(s, carried, true) || !s.MayPlace(carried) || !m.canDragTo(s) {
		return false
	}
	if m.quickcraft.mode == FullStack {
		return true
	}
	if commit {
		return carried.Count >= n
	}
	return carried.Count > n
}

func (m *Menu) commitQuickcraft(p Participant) {
	qc := &m.quickcraft
	switch len(qc.targets) {
	case 0:
		m.resetQuickcraft()
		return
	case 1:
		idx, mode := qc.targets[0].index, qc.mode
		m.resetQuickcraft()
		m.doClick(idx, mode, Pickup, p)
		return
	}

	source := m.carried.Copy()
	remaining := m.carried.Count
	n := len(qc.targets)
	for _, s := range qc.targets {
		if !m.dragEligible(s, n, true) {
			continue
		}
		existing := 0
		if s.HasItem() {
			existing = s.Item().Count
		}
		placed := source.WithCount(QuickcraftAllotment(qc.mode, source.Count, n, m.catalog.MaxStackSize(source)) + existing)
		if limit := min(m.catalog.MaxStackSize(placed), s.MaxStackSizeFor(placed)); placed.Count > limit {
			placed.Count = limit
		}
		remaining -= placed.Count - existing
		s.Set(placed)
	}
	m.carried = source.WithCount(remaining)
	m.resetQuickcraft()
}

// QuickcraftAllotment is how many items one of n drag targets receives
// from a carried stack of count items.
func QuickcraftAllotment(mode, count, n, maxStack int) int {
	switch mode {
	case EvenSplit:
		return count / n
	case SingleItem:
		return 1
	case FullStack:
		return maxStack
	}
	return 0
}

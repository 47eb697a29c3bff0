// Package menus provides concrete container menus built on pkg/menu.
package menus

import (
	"errors"
	"fmt"

	"github.com/go-mclib/menu/pkg/container"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
)

var ErrContainerTooSmall = errors.New("container too small")

// playerSlots is the number of inventory slots every menu exposes: 27 main
// slots followed by the 9 hotbar slots.
const playerSlots = 36

func checkSize(c container.Container, n int) error {
	if err := menu.CheckContainerSize(c, n); err != nil {
		return fmt.Errorf("%w: %v", ErrContainerTooSmall, err)
	}
	return nil
}

func checkData(d menu.ContainerData, n int) error {
	if err := menu.CheckContainerDataCount(d, n); err != nil {
		return fmt.Errorf("%w: %v", ErrContainerTooSmall, err)
	}
	return nil
}

// addPlayerInventory appends main storage then the hotbar of inv.
func addPlayerInventory(m *menu.Menu, inv container.Container) {
	m.AddContainerSlots(inv, container.MainStart, container.MainEnd)
	m.AddContainerSlots(inv, container.HotbarStart, container.HotbarEnd)
}

// quickMove runs move on the stack in slot index and writes the result back.
// It returns the original stack, or Empty when move reports no change.
func quickMove(m *menu.Menu, index int, move func(st *item.Stack) bool) item.Stack {
	s := m.Slot(index)
	if !s.HasItem() {
		return item.Empty
	}
	st := s.Item()
	orig := st.Copy()
	if !move(&st) {
		return item.Empty
	}
	if st.IsEmpty() {
		s.Set(item.Empty)
	} else {
		s.Set(st)
	}
	return orig
}

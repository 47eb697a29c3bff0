package trace

import (
	"fmt"

	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
)

// MenuRef identifies the menu an event belongs to.
type MenuRef struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

func refOf(m *menu.Menu) MenuRef {
	return MenuRef{ID: m.ContainerID(), Type: m.Type().String()}
}

// SlotChanged is a local slot change seen by menu listeners.
type SlotChanged struct {
	Menu  MenuRef    `json:"menu"`
	Slot  int        `json:"slot"`
	Stack item.Stack `json:"stack"`
}

// DataChanged is a local data field change seen by menu listeners.
type DataChanged struct {
	Menu  MenuRef `json:"menu"`
	Index int     `json:"index"`
	Value int     `json:"value"`
}

// ContentSent is a full state push to the remote side.
type ContentSent struct {
	Menu    MenuRef      `json:"menu"`
	StateID int          `json:"state_id"`
	Slots   []item.Stack `json:"slots"`
	Carried item.Stack   `json:"carried"`
	Data    []int        `json:"data,omitempty"`
}

type SlotSent struct {
	Menu    MenuRef    `json:"menu"`
	StateID int        `json:"state_id"`
	Slot    int        `json:"slot"`
	Stack   item.Stack `json:"stack"`
}

type CarriedSent struct {
	Menu    MenuRef    `json:"menu"`
	StateID int        `json:"state_id"`
	Stack   item.Stack `json:"stack"`
}

type DataSent struct {
	Menu  MenuRef `json:"menu"`
	Index int     `json:"index"`
	Value int     `json:"value"`
}

// Clicked is one click handled by a session. Err is empty on success.
type Clicked struct {
	Menu    MenuRef        `json:"menu"`
	Slot    int            `json:"slot"`
	Button  int            `json:"button"`
	Type    menu.ClickType `json:"type"`
	StateID int            `json:"state_id"`
	Desync  bool           `json:"desync,omitempty"`
	Err     string         `json:"err,omitempty"`
}

type Closed struct {
	Menu MenuRef `json:"menu"`
}

func (r MenuRef) String() string { return fmt.Sprintf("%s#%d", r.Type, r.ID) }

func (e SlotChanged) String() string {
	return fmt.Sprintf("%s slot %d changed: %s", e.Menu, e.Slot, e.Stack)
}

func (e DataChanged) String() string {
	return fmt.Sprintf("%s data %d changed: %d", e.Menu, e.Index, e.Value)
}

func (e ContentSent) String() string {
	return fmt.Sprintf("%s sent content: %d slots, carried %s (state %d)", e.Menu, len(e.Slots), e.Carried, e.StateID)
}

func (e SlotSent) String() string {
	return fmt.Sprintf("%s sent slot %d: %s (state %d)", e.Menu, e.Slot, e.Stack, e.StateID)
}

func (e CarriedSent) String() string {
	return fmt.Sprintf("%s sent carried: %s (state %d)", e.Menu, e.Stack, e.StateID)
}

func (e DataSent) String() string {
	return fmt.Sprintf("%s sent data %d: %d", e.Menu, e.Index, e.Value)
}

func (e Clicked) String() string {
	s := fmt.Sprintf("%s click slot %d button %d %s (state %d)", e.Menu, e.Slot, e.Button, e.Type, e.StateID)
	if e.Desync {
		s += ", desynced"
	}
	if e.Err != "" {
		s += ": " + e.Err
	}
	return s
}

func (e Closed) String() string { return fmt.Sprintf("%s closed", e.Menu) }

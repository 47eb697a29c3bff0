// Package console implements a small command language for driving a menu
// session by hand or from a script.
package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-mclib/menu/pkg/menu"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is a parsed console line.
type Command interface {
	command()
}

// Click is `click <slot> <button> <type>`. Type is a click type name such
// as pickup or quick_move.
type Click struct {
	Slot   int
	Button int
	Type   menu.ClickType
}

// Drag is `drag <mode> <slot>...`, a whole quick-craft gesture. Mode is
// even, single or full.
type Drag struct {
	Mode  int
	Slots []int
}

// Give is `give <slot> <item> <count>`. Item is a catalog name or numeric id.
type Give struct {
	Slot  int
	Item  string
	Count int
}

// Data is `data <index> <value>`.
type Data struct {
	Index int
	Value int
}

// Button is `button <id>`, a menu-specific button such as a lectern page
// turn.
type Button struct {
	ID int
}

type (
	Show  struct{}
	Close struct{}
)

func (Click) command()  {}
func (Drag) command()   {}
func (Give) command()   {}
func (Data) command()   {}
func (Button) command() {}
func (Show) command()   {}
func (Close) command()  {}

var dragModes = map[string]int{
	"even":   menu.EvenSplit,
	"single": menu.SingleItem,
	"full":   menu.FullStack,
}

// Parse parses one line. Blank lines and lines starting with # yield a nil
// command and no error.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "click":
		if len(args) != 3 {
			return nil, usage(name, "<slot> <button> <type>")
		}
		slot, err := parseInt(args[0], "slot")
		if err != nil {
			return nil, err
		}
		button, err := parseInt(args[1], "button")
		if err != nil {
			return nil, err
		}
		t, err := menu.ParseClickType(strings.ToUpper(args[2]))
		if err != nil {
			return nil, err
		}
		return Click{Slot: slot, Button: button, Type: t}, nil

	case "drag":
		if len(args) < 2 {
			return nil, usage(name, "<even|single|full> <slot>...")
		}
		mode, ok := dragModes[strings.ToLower(args[0])]
		if !ok {
			return nil, fmt.Errorf("unknown drag mode %q", args[0])
		}
		slots := make([]int, 0, len(args)-1)
		for _, a := range args[1:] {
			s, err := parseInt(a, "slot")
			if err != nil {
				return nil, err
			}
			slots = append(slots, s)
		}
		return Drag{Mode: mode, Slots: slots}, nil

	case "give":
		if len(args) != 3 {
			return nil, usage(name, "<slot> <item> <count>")
		}
		slot, err := parseInt(args[0], "slot")
		if err != nil {
			return nil, err
		}
		count, err := parseInt(args[2], "count")
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, fmt.Errorf("negative count %d", count)
		}
		return Give{Slot: slot, Item: args[1], Count: count}, nil

	case "data":
		if len(args) != 2 {
			return nil, usage(name, "<index> <value>")
		}
		idx, err := parseInt(args[0], "index")
		if err != nil {
			return nil, err
		}
		v, err := parseInt(args[1], "value")
		if err != nil {
			return nil, err
		}
		return Data{Index: idx, Value: v}, nil

	case "button":
		if len(args) != 1 {
			return nil, usage(name, "<id>")
		}
		id, err := parseInt(args[0], "button id")
		if err != nil {
			return nil, err
		}
		return Button{ID: id}, nil

	case "show":
		return Show{}, nil
	case "close":
		return Close{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
}

func parseInt(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return n, nil
}

func usage(name, args string) error {
	return fmt.Errorf("usage: %s %s", name, args)
}

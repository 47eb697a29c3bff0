package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
	"github.com/go-mclib/menu/pkg/netsync"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

var (
	ErrNoMenu        = errors.New("no menu open")
	ErrButtonIgnored = errors.New("button ignored")
)

// Runner executes commands against the menu open in a session. Clicks go
// through the session as client packets; give and data edit the menu
// directly as the server would.
type Runner struct {
	Logger *log.Logger
	Out    io.Writer

	session *netsync.Session
	catalog *item.Catalog
}

func NewRunner(session *netsync.Session, catalog *item.Catalog, out io.Writer) *Runner {
	return &Runner{
		Logger:  log.New(io.Discard, "", 0),
		Out:     out,
		session: session,
		catalog: catalog,
	}
}

// Exec parses and runs one line.
func (r *Runner) Exec(line string) error {
	cmd, err := Parse(line)
	if err != nil || cmd == nil {
		return err
	}
	return r.Run(cmd)
}

// RunScript runs every line of rd, stopping at the first failure.
func (r *Runner) RunScript(rd io.Reader) error {
	sc := bufio.NewScanner(rd)
	for n := 1; sc.Scan(); n++ {
		if err := r.Exec(sc.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

func (r *Runner) Run(cmd Command) error {
	switch c := cmd.(type) {
	case Click:
		return r.click(c.Slot, c.Button, c.Type)
	case Drag:
		if err := r.click(menu.SlotClickedOutside, menu.QuickcraftMask(menu.QuickcraftStart, c.Mode), menu.QuickCraft); err != nil {
			return err
		}
		for _, s := range c.Slots {
			if err := r.click(s, menu.QuickcraftMask(menu.QuickcraftContinue, c.Mode), menu.QuickCraft); err != nil {
				return err
			}
		}
		return r.click(menu.SlotClickedOutside, menu.QuickcraftMask(menu.QuickcraftEnd, c.Mode), menu.QuickCraft)
	case Give:
		return r.give(c)
	case Data:
		return r.edit(func(m *menu.Menu) error {
			if c.Index < 0 || c.Index >= m.DataCount() {
				return fmt.Errorf("data index %d out of range for %d fields", c.Index, m.DataCount())
			}
			m.DataSlot(c.Index).Set(c.Value)
			return nil
		})
	case Button:
		return r.button(c.ID)
	case Show:
		return r.edit(func(m *menu.Menu) error {
			_, err := io.WriteString(r.Out, Render(m))
			return err
		})
	case Close:
		if r.session.Menu() == nil {
			return ErrNoMenu
		}
		r.session.Close()
		return nil
	}
	return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
}

func (r *Runner) click(slot, button int, t menu.ClickType) error {
	var d *packets.C2SContainerClick
	r.session.Do(func(m *menu.Menu) {
		d = &packets.C2SContainerClick{
			WindowId:    ns.VarInt(m.ContainerID()),
			StateId:     ns.VarInt(m.StateID()),
			Slot:        ns.Int16(slot),
			Button:      ns.Int8(button),
			Mode:        ns.VarInt(t),
			CarriedItem: netsync.Unpredicted,
		}
	})
	if d == nil {
		return ErrNoMenu
	}
	r.Logger.Printf("console: click slot %d button %d %s", slot, button, t)
	return r.session.HandleClick(d)
}

func (r *Runner) button(id int) error {
	var d *packets.C2SContainerButtonClick
	r.session.Do(func(m *menu.Menu) {
		d = &packets.C2SContainerButtonClick{WindowId: ns.VarInt(m.ContainerID()), ButtonId: ns.VarInt(id)}
	})
	if d == nil {
		return ErrNoMenu
	}
	r.Logger.Printf("console: button %d", id)
	if !r.session.HandleButtonClick(d) {
		return fmt.Errorf("%w: %d", ErrButtonIgnored, id)
	}
	return nil
}

func (r *Runner) give(c Give) error {
	kind, err := r.resolve(c.Item)
	if err != nil {
		return err
	}
	return r.edit(func(m *menu.Menu) error {
		if c.Slot < 0 || c.Slot >= m.SlotCount() {
			return fmt.Errorf("slot %d out of range for %d slots", c.Slot, m.SlotCount())
		}
		m.Slot(c.Slot).Set(item.New(kind, c.Count))
		return nil
	})
}

func (r *Runner) resolve(name string) (item.Kind, error) {
	if id, err := strconv.Atoi(name); err == nil && id > 0 {
		return item.Kind(id), nil
	}
	return r.catalog.Lookup(name)
}

// edit runs fn on the open menu and broadcasts.
func (r *Runner) edit(fn func(m *menu.Menu) error) error {
	err := ErrNoMenu
	r.session.Do(func(m *menu.Menu) { err = fn(m) })
	return err
}

// Render formats the non-empty slots, the carried stack and the data fields
// of m.
func Render(m *menu.Menu) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d (state %d)\n", m.Type(), m.ContainerID(), m.StateID())
	empty := 0
	for i, s := range m.Items() {
		if s.IsEmpty() {
			empty++
			continue
		}
		fmt.Fprintf(&b, "  %3d  %s\n", i, s)
	}
	fmt.Fprintf(&b, "  %d empty slots\n", empty)
	fmt.Fprintf(&b, "carried: %s\n", m.Carried())
	if n := m.DataCount(); n > 0 {
		vals := make([]string, n)
		for i := range n {
			vals[i] = strconv.Itoa(m.DataSlot(i).Get())
		}
		fmt.Fprintf(&b, "data: %s\n", strings.Join(vals, " "))
	}
	return b.String()
}

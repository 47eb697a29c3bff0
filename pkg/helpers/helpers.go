package helpers

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-mclib/menu/pkg/console"
	"github.com/go-mclib/menu/pkg/container"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/journal"
	"github.com/go-mclib/menu/pkg/menu"
	"github.com/go-mclib/menu/pkg/menus"
	"github.com/go-mclib/menu/pkg/netsync"
	"github.com/go-mclib/menu/pkg/trace"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// windowID is the container id of the menu a Console opens.
const windowID = 1

// Flags holds common CLI flags for the menu tools.
type Flags struct {
	Catalog     string
	Menu        string
	Rows        int
	Player      string
	Journal     string
	Index       string
	Interactive bool
	Verbose     bool
	Script      string
	MaxLogLines int
}

// RegisterFlags registers the standard CLI flags on fs.
func RegisterFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVar(&f.Catalog, "catalog", "", "item catalog YAML (default: built-in catalog)")
	fs.StringVar(&f.Menu, "menu", "chest", "menu to open (chest, furnace or lectern)")
	fs.IntVar(&f.Rows, "rows", 3, "chest rows (1-6)")
	fs.StringVar(&f.Player, "player", "player", "participant name")
	fs.StringVar(&f.Journal, "journal", "", "write a zstd JSONL journal of menu traffic to this file")
	fs.StringVar(&f.Index, "index", "", "index journal entries in this SQLite database")
	fs.BoolVarP(&f.Interactive, "interactive", "i", false, "run the interactive console")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "verbose logging, including local slot changes")
	fs.StringVar(&f.Script, "script", "", "run console commands from this file (- for stdin)")
	fs.IntVar(&f.MaxLogLines, "max-log-lines", 1000, "lines kept by the interactive console (0 = unlimited)")
}

// LoadCatalog reads the catalog at path, or the built-in one when path is
// empty.
func LoadCatalog(path string) (*item.Catalog, error) {
	if path == "" {
		return item.LoadCatalog(bytes.NewReader(defaultCatalog))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return item.LoadCatalog(f)
}

// Console is an assembled menu session: one participant, the authoritative
// menu behind a netsync.Session, a display mirror fed over an in-process
// loopback, and the trace plumbing. It satisfies tui.Backend.
type Console struct {
	Logger  *log.Logger
	Catalog *item.Catalog
	Player  *container.Player
	Session *netsync.Session
	Mirror  *netsync.Mirror
	Bus     *trace.Bus
	Runner  *console.Runner

	flags    Flags
	recorder *trace.Recorder
	journal  *journal.Writer
	index    *journal.Index
}

// NewConsole builds a console from parsed flags. Command output goes to out.
func NewConsole(f Flags, logger *log.Logger, out io.Writer) (*Console, error) {
	cat, err := LoadCatalog(f.Catalog)
	if err != nil {
		return nil, err
	}

	c := &Console{
		Logger:  logger,
		Catalog: cat,
		Player:  container.NewPlayer(f.Player, cat),
		Bus:     trace.NewBus(),
		flags:   f,
	}
	c.Bus.Logger = logger
	c.recorder = trace.NewRecorder(c.Bus)

	// The display side has containers of its own and only learns their
	// contents from packets.
	display, err := c.buildMenu(container.NewInventory(cat))
	if err != nil {
		return nil, err
	}
	c.Mirror = netsync.NewMirror(display, logger)
	c.Session = netsync.NewSession(c.Player, c.Mirror, logger)
	c.Session.Wrap(c.recorder.Wrap)
	c.Session.OnClick(c.recorder.Clicked)
	c.Session.OnClose(c.recorder.Closed)
	c.Runner = console.NewRunner(c.Session, cat, out)
	c.Runner.Logger = logger

	if f.Index != "" {
		if c.index, err = journal.OpenIndex(f.Index); err != nil {
			return nil, err
		}
	}
	if f.Journal != "" {
		if c.journal, err = journal.Create(f.Journal); err != nil {
			c.Close()
			return nil, err
		}
		c.journal.Logger = logger
		c.journal.Attach(c.Bus)
		if c.index != nil {
			c.journal.OnEntry(func(e journal.Entry) {
				if err := c.index.Record(context.Background(), e); err != nil {
					logger.Println(err)
				}
			})
		}
	}
	return c, nil
}

// SetOutput redirects logging and command output.
func (c *Console) SetOutput(w io.Writer) {
	c.Logger.SetOutput(w)
	c.Runner.Out = w
}

// Open builds the configured menu over fresh containers and opens it. The
// player starts with a few demo stacks and a lectern holds a book.
func (c *Console) Open() error {
	m, err := c.buildMenu(c.Player.PlayerInventory())
	if err != nil {
		return err
	}
	for _, seed := range []struct {
		name  string
		count int
	}{{"minecraft:stone", 64}, {"minecraft:coal", 16}, {"minecraft:iron_ore", 24}} {
		if kind, err := c.Catalog.Lookup(seed.name); err == nil {
			c.Player.Inventory().Add(item.New(kind, seed.count))
		}
	}
	if _, ok := m.Behavior().(*menus.Lectern); ok {
		if kind, err := c.Catalog.Lookup("minecraft:written_book"); err == nil {
			m.Slot(0).Set(item.New(kind, 1))
		}
	}
	if err := c.Session.Open(m); err != nil {
		return err
	}
	m.AddListener(c.recorder)
	c.Logger.Printf("opened %s for %s", m.Type(), c.Player.Name())
	return nil
}

// buildMenu creates the configured menu over fresh containers and inv.
func (c *Console) buildMenu(inv container.Container) (*menu.Menu, error) {
	opt := menu.WithLogger(c.Logger)
	switch c.flags.Menu {
	case "chest":
		rows := c.flags.Rows
		return menus.NewChest(windowID, c.Catalog, container.NewSimple(max(rows, 0)*9), inv, rows, opt)
	case "furnace":
		return menus.NewFurnace(windowID, c.Catalog, container.NewSimple(3), menu.NewSimpleContainerData(4), inv, opt)
	case "lectern":
		return menus.NewLectern(windowID, c.Catalog, container.NewSimple(1), menu.NewSimpleContainerData(1), opt)
	}
	return nil, fmt.Errorf("unknown menu %q", c.flags.Menu)
}

func (c *Console) Title() string {
	return fmt.Sprintf("Menu console - %s@%s", c.Player.Name(), c.flags.Menu)
}

func (c *Console) MaxLogLines() int { return c.flags.MaxLogLines }

func (c *Console) Exec(line string) error { return c.Runner.Exec(line) }

// Close closes the open menu and flushes the journal and index.
func (c *Console) Close() {
	if c.Session != nil {
		c.Session.Close()
	}
	if c.journal != nil {
		if err := c.journal.Close(); err != nil {
			c.Logger.Println("journal:", err)
		}
		c.journal = nil
	}
	if c.index != nil {
		if err := c.index.Close(); err != nil {
			c.Logger.Println("index:", err)
		}
		c.index = nil
	}
}

package menus

import (
	"github.com/go-mclib/menu/pkg/container"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
)

const LecternType menu.Type = "minecraft:lectern"

// Lectern buttons. Ids from LecternPageJump up select page id-LecternPageJump.
const (
	LecternPrevPage = 1
	LecternNextPage = 2
	LecternTakeBook = 3
	LecternPageJump = 100
)

// LecternPage is the data field holding the open page.
const LecternPage = 0

// Lectern is the behavior of a lectern menu: one book slot, no player
// inventory, and page buttons.
type Lectern struct {
	book container.Container
	// Pages bounds page selection when positive.
	Pages int
}

// NewLectern builds a lectern menu over a 1-slot lectern container and its
// page value.
func NewLectern(id int, catalog *item.Catalog, lectern container.Container, data menu.ContainerData, opts ...menu.Option) (*menu.Menu, error) {
	if err := checkSize(lectern, 1); err != nil {
		return nil, err
	}
	if err := checkData(data, 1); err != nil {
		return nil, err
	}
	b := &Lectern{book: lectern}
	m := menu.New(LecternType, id, catalog, append([]menu.Option{menu.WithBehavior(b)}, opts...)...)
	m.AddSlot(menu.NewSlot(lectern, 0))
	m.AddDataSlots(data)
	return m, nil
}

func (l *Lectern) QuickMoveStack(*menu.Menu, menu.Participant, int) item.Stack { return item.Empty }

func (l *Lectern) StillValid(menu.Participant) bool { return true }

// ClickMenuButton turns pages or hands the book to p.
func (l *Lectern) ClickMenuButton(m *menu.Menu, p menu.Participant, id int) bool {
	page := m.DataSlot(LecternPage).Get()
	switch {
	case id >= LecternPageJump:
		l.setPage(m, id-LecternPageJump)
	case id == LecternPrevPage:
		l.setPage(m, page-1)
	case id == LecternNextPage:
		l.setPage(m, page+1)
	case id == LecternTakeBook:
		b := l.book.Item(0)
		if b.IsEmpty() {
			return false
		}
		l.book.SetItem(0, item.Empty)
		l.book.SetChanged()
		if rest := p.Inventory().Add(b); !rest.IsEmpty() {
			p.Drop(rest, false)
		}
	default:
		return false
	}
	return true
}

func (l *Lectern) setPage(m *menu.Menu, page int) {
	if l.Pages > 0 {
		page = min(page, l.Pages-1)
	}
	m.SetData(LecternPage, max(page, 0))
}

// Book returns the stack on the lectern.
func (l *Lectern) Book() item.Stack { return l.book.Item(0) }

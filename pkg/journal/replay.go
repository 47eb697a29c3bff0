package journal

import (
	"encoding/json"
	"fmt"

	"github.com/go-mclib/menu/pkg/menu"
	"github.com/go-mclib/menu/pkg/trace"
)

// Replay re-applies the recorded clicks for m's container id to m on behalf
// of p, broadcasting after each one. Clicks that failed when recorded are
// skipped. It returns the number of clicks applied.
func Replay(entries []Entry, m *menu.Menu, p menu.Participant) (int, error) {
	n := 0
	for _, e := range entries {
		if e.Kind != KindClicked || e.Menu.ID != m.ContainerID() {
			continue
		}
		var c trace.Clicked
		if err := json.Unmarshal(e.Data, &c); err != nil {
			return n, fmt.Errorf("journal: replay entry %d: %w", e.Seq, err)
		}
		if c.Err != "" {
			continue
		}
		if err := m.Clicked(c.Slot, c.Button, c.Type, p); err != nil {
			return n, fmt.Errorf("journal: replay entry %d: %w", e.Seq, err)
		}
		m.BroadcastChanges()
		n++
	}
	return n, nil
}

package tui

import (
	"fmt"

	"github.com/go-mclib/menu/pkg/trace"
)

// Follow forwards trace events on bus to send, one line per event. Local
// slot and data changes are included only when verbose is set.
func Follow(bus *trace.Bus, send func(line string), verbose bool) (stop func()) {
	unsubs := []func(){
		follow[trace.ContentSent](bus, send),
		follow[trace.SlotSent](bus, send),
		follow[trace.CarriedSent](bus, send),
		follow[trace.DataSent](bus, send),
		follow[trace.Clicked](bus, send),
		follow[trace.Closed](bus, send),
	}
	if verbose {
		unsubs = append(unsubs,
			follow[trace.SlotChanged](bus, send),
			follow[trace.DataChanged](bus, send),
		)
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func follow[T fmt.Stringer](bus *trace.Bus, send func(string)) func() {
	return trace.Subscribe(bus, func(e T) { send(e.String()) })
}

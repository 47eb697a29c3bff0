// Package trace fans menu traffic out to interested observers: the journal,
// the console and tests.
package trace

import (
	"io"
	"log"
	"reflect"
	"sync/atomic"

	"github.com/jilio/ebu"
)

// Handler receives events of type T.
type Handler[T any] func(T)

// Bus is a typed publish/subscribe hub over an ebu event bus. Handlers run
// synchronously on the publisher's goroutine. A Bus is safe for concurrent
// use.
type Bus struct {
	Logger *log.Logger

	events *ebu.EventBus
}

func NewBus() *Bus {
	b := &Bus{Logger: log.New(io.Discard, "", log.LstdFlags)}
	b.events = ebu.New(ebu.WithPanicHandler(func(event any, handlerType reflect.Type, r any) {
		b.Logger.Printf("trace: %v handler for %T panicked: %v", handlerType, event, r)
	}))
	return b
}

// Events exposes the underlying ebu bus.
func (b *Bus) Events() *ebu.EventBus { return b.events }

// Subscribe registers handler for events of type T and returns a function
// that removes it. Removal takes effect for publishes that have not yet
// reached the handler, including one in progress.
func Subscribe[T any](bus *Bus, handler Handler[T]) (unsubscribe func()) {
	// ebu.Unsubscribe matches handlers by code pointer, which closures share,
	// so a removed handler is filtered out instead.
	var active atomic.Bool
	active.Store(true)
	err := ebu.Subscribe(bus.events, ebu.Handler[T](handler), ebu.WithFilter(func(T) bool {
		return active.Load()
	}))
	if err != nil {
		panic("trace: " + err.Error())
	}
	return func() { active.Store(false) }
}

// Publish delivers event to every handler subscribed to T.
func Publish[T any](bus *Bus, event T) {
	ebu.Publish(bus.events, event)
}

// HasSubscribers reports whether any handler was ever subscribed to T.
func HasSubscribers[T any](bus *Bus) bool {
	return ebu.HasHandlers[T](bus.events)
}

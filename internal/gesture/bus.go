// Package gesture implements the pointer-driven interactions of the
// timeline: whole-block moves, edge resizes and viewport panning.
//
// A gesture subscribes to the pointer source when it starts and removes
// itself when it ends, so motion and release are observed wherever the
// pointer happens to be.
package gesture

import (
	"sort"

	"github.com/xvierd/dayblocks/internal/ports"
)

// Bus fans pointer events out to the listeners of active gestures.
// It is not safe for concurrent use; callers serialise access.
type Bus struct {
	nextID    int
	listeners map[int]func(ports.PointerEvent)
}

// NewBus creates an empty pointer bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]func(ports.PointerEvent))}
}

// Subscribe registers a listener. The returned function is idempotent.
func (b *Bus) Subscribe(listener func(ports.PointerEvent)) func() {
	id := b.nextID
	b.nextID++
	b.listeners[id] = listener
	return func() {
		delete(b.listeners, id)
	}
}

// Dispatch delivers ev to every listener registered when the call began,
// in subscription order. Listeners may unsubscribe while being called.
func (b *Bus) Dispatch(ev ports.PointerEvent) {
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := b.listeners[id]; ok {
			fn(ev)
		}
	}
}

// Listeners returns the number of registered listeners.
func (b *Bus) Listeners() int {
	return len(b.listeners)
}

var _ ports.PointerSource = (*Bus)(nil)

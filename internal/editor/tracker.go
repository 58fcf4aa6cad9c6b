package editor

import (
	"fmt"
	"sync"

	evbus "github.com/asaskevich/EventBus"
)

// ChangeTracker raises a dirty flag on any list mutation published on the
// bus it is attached to.
type ChangeTracker struct {
	attachMu sync.Mutex
	bus      evbus.Bus

	mu    sync.Mutex
	dirty bool
}

// Attach subscribes the tracker to bus. Attaching to the bus it already
// listens on is a no-op; attaching to another bus detaches first.
func (t *ChangeTracker) Attach(bus evbus.Bus) error {
	t.attachMu.Lock()
	defer t.attachMu.Unlock()
	if bus == nil || t.bus == bus {
		return nil
	}
	if t.bus != nil {
		if err := t.bus.Unsubscribe(TopicListMutated, t.onMutation); err != nil {
			return fmt.Errorf("detaching tracker: %w", err)
		}
	}
	if err := bus.Subscribe(TopicListMutated, t.onMutation); err != nil {
		return fmt.Errorf("attaching tracker: %w", err)
	}
	t.bus = bus
	return nil
}

// Detach unsubscribes the tracker. It is safe to call when not attached.
func (t *ChangeTracker) Detach() error {
	t.attachMu.Lock()
	defer t.attachMu.Unlock()
	if t.bus == nil {
		return nil
	}
	err := t.bus.Unsubscribe(TopicListMutated, t.onMutation)
	t.bus = nil
	if err != nil {
		return fmt.Errorf("detaching tracker: %w", err)
	}
	return nil
}

// Dirty reports whether a mutation happened since the last Clear.
func (t *ChangeTracker) Dirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty
}

// Clear lowers the dirty flag.
func (t *ChangeTracker) Clear() {
	t.mu.Lock()
	t.dirty = false
	t.mu.Unlock()
}

func (t *ChangeTracker) onMutation(Mutation) {
	t.mu.Lock()
	t.dirty = true
	t.mu.Unlock()
}

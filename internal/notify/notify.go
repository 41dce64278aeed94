// Package notify fans out store-change events to in-process listeners.
// It is transport-agnostic: UI surfaces, the IPC layer and tests all
// register the same Listener interface.
//
// Two kinds of event exist. DataChanged carries no payload and tells
// listeners to re-query the store. ClipAdded carries the freshly persisted
// clip plus its parsed metadata for consumers that want the row without a
// round trip.
package notify

import (
	"log/slog"
	"sync"

	"go.klb.dev/clipstash/internal/store"
)

// Kind identifies the event type.
type Kind string

const (
	KindDataChanged Kind = "data-changed"
	KindClipAdded   Kind = "clip-added"
)

// Event is a single notification.
type Event struct {
	Kind Kind
	// Clip and Metadata are set only for KindClipAdded.
	Clip     *store.Clip
	Metadata any
}

// Listener is anything that can receive events from the hub.
type Listener interface {
	ID() string
	// Notify delivers an event. Must be non-blocking.
	Notify(Event)
}

// Hub routes events to all registered listeners.
type Hub struct {
	mu        sync.RWMutex
	listeners map[string]Listener
}

// New returns an empty Hub.
func New() *Hub {
	return &Hub{listeners: make(map[string]Listener)}
}

// Register adds a listener. Registering the same ID again replaces the
// previous listener.
func (h *Hub) Register(l Listener) {
	h.mu.Lock()
	h.listeners[l.ID()] = l
	total := len(h.listeners)
	h.mu.Unlock()

	slog.Debug("notify listener registered", "listener", l.ID(), "total", total)
}

// Unregister removes a listener.
func (h *Hub) Unregister(l Listener) {
	h.mu.Lock()
	delete(h.listeners, l.ID())
	total := len(h.listeners)
	h.mu.Unlock()

	slog.Debug("notify listener unregistered", "listener", l.ID(), "total", total)
}

// DataChanged broadcasts a payload-free re-query signal.
func (h *Hub) DataChanged() {
	h.broadcast(Event{Kind: KindDataChanged})
}

// ClipAdded broadcasts a newly persisted clip with its parsed metadata.
func (h *Hub) ClipAdded(c *store.Clip, metadata any) {
	h.broadcast(Event{Kind: KindClipAdded, Clip: c, Metadata: metadata})
}

func (h *Hub) broadcast(e Event) {
	h.mu.RLock()
	targets := make([]Listener, 0, len(h.listeners))
	for _, l := range h.listeners {
		targets = append(targets, l)
	}
	h.mu.RUnlock()

	for _, l := range targets {
		l.Notify(e)
	}
}

// ChanListener adapts a buffered channel into a Listener. Delivery is
// non-blocking: when the buffer is full the event is dropped, since every
// consumer can recover by re-querying the store.
type ChanListener struct {
	id string
	ch chan Event
}

// NewChanListener returns a listener buffering up to size events.
func NewChanListener(id string, size int) *ChanListener {
	return &ChanListener{id: id, ch: make(chan Event, size)}
}

func (l *ChanListener) ID() string { return l.id }

// Events returns the receive side of the listener's channel.
func (l *ChanListener) Events() <-chan Event { return l.ch }

// Notify implements Listener.
func (l *ChanListener) Notify(e Event) {
	select {
	case l.ch <- e:
	default:
		slog.Warn("notify listener buffer full, dropping event", "listener", l.id, "kind", e.Kind)
	}
}

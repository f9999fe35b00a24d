// Package events provides the process-wide notification bus and reactive
// values shared by the theme controller, the weather presenter and the
// provider selector.
package events

import (
	"crypto/rand"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Event names emitted on the bus.
const (
	NameTheme       = "theme"
	NameWeatherData = "weatherData"
	NameProvider    = "provider"
	NameAQIProvider = "aqi_provider"
)

// Event is a single notification on the bus.
type Event struct {
	ID   string    // ULID, sortable by emission time
	Name string    // Event name (theme, weatherData, ...)
	Data any       // Payload, type depends on Name
	Time time.Time // Emission time
}

// Bus fans out named events to subscribers.
// Delivery is non-blocking: a subscriber whose buffer is full misses the event.
type Bus struct {
	mu       sync.RWMutex
	subs     map[string][]chan Event
	handlers map[string][]*handler
	closed   bool
}

type handler struct {
	fn func(Event)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs:     make(map[string][]chan Event),
		handlers: make(map[string][]*handler),
	}
}

var (
	defaultBus     *Bus
	defaultBusOnce sync.Once
)

// Default returns the process-wide bus.
func Default() *Bus {
	defaultBusOnce.Do(func() {
		defaultBus = NewBus()
	})
	return defaultBus
}

// Notify emits an event with the given name and payload.
// Handlers registered with On run synchronously on the caller's goroutine.
func (b *Bus) Notify(name string, data any) Event {
	ev := Event{
		ID:   newID(),
		Name: name,
		Data: data,
		Time: time.Now(),
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ev
	}
	// Sends stay under the read lock; Unsubscribe and Close close channels under the write lock
	for _, ch := range b.subs[name] {
		select {
		case ch <- ev:
		default:
			// Channel full, skip
		}
	}
	handlers := slices.Clone(b.handlers[name])
	b.mu.RUnlock()

	for _, h := range handlers {
		h.fn(ev)
	}
	return ev
}

// Subscribe returns a channel that receives events with the given name.
func (b *Bus) Subscribe(name string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 10)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[name] = append(b.subs[name], ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(name string, ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[name]
	for i, sub := range subs {
		if sub == ch {
			b.subs[name] = append(subs[:i], subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// On registers a synchronous handler for the named event.
// The returned function removes the handler.
func (b *Bus) On(name string, fn func(Event)) func() {
	h := &handler{fn: fn}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return func() {}
	}
	b.handlers[name] = append(b.handlers[name], h)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		hs := b.handlers[name]
		for i, other := range hs {
			if other == h {
				b.handlers[name] = append(hs[:i], hs[i+1:]...)
				return
			}
		}
	}
}

// Close closes all subscriber channels. Later notifications are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, subs := range b.subs {
		for _, ch := range subs {
			close(ch)
		}
	}
	b.subs = nil
	b.handlers = nil
}

func newID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return ""
	}
	return id.String()
}

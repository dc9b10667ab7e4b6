package events

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Well-known channel names used by the explorer.
const (
	CurrentPathChanged   = "current_path_changed"
	CurrentFolderChanged = "current_folder_changed"
	DisplayModeChanged   = "display_mode_changed"
)

var logger = log.With().Str("component", "events").Logger()

// Event is a named channel of zero-argument listeners. Listeners are
// invoked synchronously, in registration order, on the producing
// goroutine.
type Event struct {
	name       string
	listeners  []func()
	delivering bool
}

func (e *Event) Name() string {
	return e.name
}

// ConsumedBy appends a listener. Registration order defines invocation
// order.
func (e *Event) ConsumedBy(listener func()) {
	if listener == nil {
		return
	}
	e.listeners = append(e.listeners, listener)
}

// Produce invokes every registered listener exactly once. A nested
// Produce on the same channel from inside a listener is a no-op:
// delivery is already in progress and listeners re-read shared state
// anyway. A panicking listener is recovered and logged, and delivery
// continues with the remaining listeners.
func (e *Event) Produce() {
	if e.delivering {
		logger.Debug().Str("event", e.name).Msg("nested produce suppressed")
		return
	}
	e.delivering = true
	defer func() { e.delivering = false }()
	for _, listener := range e.listeners {
		deliver(e.name, listener)
	}
}

func deliver(name string, listener func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Str("event", name).Any("panic", r).Msg("listener panicked")
		}
	}()
	listener()
}

// Bus maps channel names to events. Not safe for concurrent use: the
// explorer runs on a single UI goroutine.
type Bus struct {
	events map[string]*Event
	log    zerolog.Logger
}

func NewBus() *Bus {
	return &Bus{
		events: make(map[string]*Event),
		log:    logger,
	}
}

// Register returns the channel with the given name, creating it on
// first use.
func (b *Bus) Register(name string) *Event {
	if e, ok := b.events[name]; ok {
		return e
	}
	e := &Event{name: name}
	b.events[name] = e
	return e
}

// Produce produces on the named channel if it exists. Producing on an
// unregistered channel is a no-op.
func (b *Bus) Produce(name string) {
	if e, ok := b.events[name]; ok {
		e.Produce()
	}
}

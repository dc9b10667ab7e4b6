package events

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestBus_Register(t *testing.T) {
	b := NewBus()

	e := b.Register("some_event")
	assert.NotZero(t, e)
	assert.Equal(t, "some_event", e.Name())

	t.Run("same_channel_on_repeat", func(t *testing.T) {
		again := b.Register("some_event")
		if again != e {
			t.Fatalf("expected the same *Event for the same name")
		}
	})
}

func TestEvent_Produce_order(t *testing.T) {
	b := NewBus()
	e := b.Register("ordered")

	var calls []string
	e.ConsumedBy(func() { calls = append(calls, "first") })
	e.ConsumedBy(func() { calls = append(calls, "second") })

	e.Produce()
	assert.Equal(t, []string{"first", "second"}, calls)

	t.Run("repeated_produce_reinvokes", func(t *testing.T) {
		calls = nil
		e.Produce()
		e.Produce()
		assert.Equal(t, []string{"first", "second", "first", "second"}, calls)
	})
}

func TestEvent_Produce_nested(t *testing.T) {
	b := NewBus()
	e := b.Register("nested")

	count := 0
	e.ConsumedBy(func() {
		count++
		if count < 10 {
			e.Produce() // must not recurse
		}
	})
	e.Produce()
	assert.Equal(t, 1, count)
}

func TestEvent_Produce_listenerPanic(t *testing.T) {
	b := NewBus()
	e := b.Register("panicky")

	var after bool
	e.ConsumedBy(func() { panic("boom") })
	e.ConsumedBy(func() { after = true })

	e.Produce()
	assert.True(t, after, "listener after the panicking one must still run")
}

func TestEvent_ConsumedBy_nilListener(t *testing.T) {
	b := NewBus()
	e := b.Register("nils")
	e.ConsumedBy(nil)
	e.Produce() // must not panic
}

func TestBus_Produce_unregistered(t *testing.T) {
	b := NewBus()
	b.Produce("no_such_channel") // no-op
}

package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
}

func (s *memorySink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcherDeliversOnClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zaptest.NewLogger(t))

	id := uint(4)
	d.Dispatch(Event{Action: "booking_confirmed", Entity: "booking", EntityID: &id})
	d.Dispatch(Event{Action: "review_created", Entity: "review"})
	d.Close()

	assert.Len(t, sink.events, 2)
	assert.Equal(t, "booking_confirmed", sink.events[0].Action)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "x"})
	d.Close()
}

func TestDispatchAfterCloseDropsEvent(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zaptest.NewLogger(t))
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "booking_cancelled"})
	})
	d.Close()
	assert.Empty(t, sink.events)
}

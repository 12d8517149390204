package driver

import (
	"context"
	"time"
)

// EventKind classifies batch progress events.
type EventKind uint8

const (
	EventStarted EventKind = iota + 1
	EventGenerated
	EventCached
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventGenerated:
		return "generated"
	case EventCached:
		return "cached"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event reports the progress of one program in a batch.
type Event struct {
	Kind    EventKind
	Index   int
	Seed    uint64
	Path    string
	Err     error
	Elapsed time.Duration
}

// Sink receives batch events. Emit is called from worker goroutines.
type Sink interface {
	Emit(Event)
}

// NopSink drops every event.
type NopSink struct{}

// Emit implements Sink.
func (NopSink) Emit(Event) {}

// ChannelSink forwards events to a channel until its context is done.
type ChannelSink struct {
	ctx context.Context
	ch  chan<- Event
}

// NewChannelSink returns a sink that sends on ch. Sends block until the
// receiver is ready or ctx is cancelled.
func NewChannelSink(ctx context.Context, ch chan<- Event) *ChannelSink {
	return &ChannelSink{ctx: ctx, ch: ch}
}

// Emit implements Sink.
func (s *ChannelSink) Emit(ev Event) {
	select {
	case s.ch <- ev:
	case <-s.ctx.Done():
	}
}

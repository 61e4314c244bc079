package workers

import (
	"chat-feed/contract"
	"chat-feed/domain/event"
	"context"
	"log/slog"
	"slices"
	"sync"
)

var _ contract.EventSink = (*EventFanout)(nil)

// EventFanout broadcasts feed events to in-process consumers.
//
// Delivery is synchronous: Consume returns once every permanent sink, then every
// viewer registered in the registry, has seen the event. Callers that publish
// from a single goroutine therefore get delivery in publication order.
// A failing sink is logged and skipped; it never blocks the other sinks.
type EventFanout struct {
	log            *slog.Logger
	mu             sync.RWMutex
	permanentSinks []contract.EventSink
	registry       contract.IRegistry
}

func NewEventFanout(log *slog.Logger, registry contract.IRegistry, permanentSinks ...contract.EventSink) *EventFanout {
	return &EventFanout{
		log:            log,
		permanentSinks: permanentSinks,
		registry:       registry,
	}
}

func (f *EventFanout) Add(sinks ...contract.EventSink) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.permanentSinks = append(f.permanentSinks, sinks...)
}

func (f *EventFanout) Consume(ctx context.Context, evt event.DomainEvent) error {
	f.Fanout(ctx, evt)
	return nil
}

// Fanout One call for each sink
func (f *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	f.mu.RLock()
	sinks := slices.Clone(f.permanentSinks)
	f.mu.RUnlock()
	if f.registry != nil {
		sinks = append(sinks, f.registry.Sinks()...)
	}

	for _, sink := range sinks {
		if err := sink.Consume(ctx, evt); err != nil {
			f.log.Warn("Sink failed to consume event", "event", evt.Name(), "error", err)
		}
	}
}

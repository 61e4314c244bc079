package runtime

import (
	"chat-feed/contract"
	"chat-feed/domain/event"
	"context"
	"sync"

	"github.com/samber/lo"
)

func toAny(sinks []contract.EventSink) []any {
	return lo.Map(sinks, func(s contract.EventSink, _ int) any { return s })
}

// recordingSink keeps every event it consumed.
type recordingSink struct {
	mu      sync.Mutex
	events  []event.DomainEvent
	consume func(e event.DomainEvent)
}

func (s *recordingSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.mu.Lock()
	s.events = append(s.events, e)
	hook := s.consume
	s.mu.Unlock()
	if hook != nil {
		hook(e)
	}
	return nil
}

func (s *recordingSink) changes() []event.TranscriptChanged {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []event.TranscriptChanged
	for _, e := range s.events {
		if c, ok := e.(event.TranscriptChanged); ok {
			res = append(res, c)
		}
	}
	return res
}

package main

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/domain/event"
	"context"
	"sync"
)

// fakeService records what the presentation asks of the feed.
type fakeService struct {
	mu         sync.Mutex
	submitted  []string
	accept     bool
	draft      string
	sending    bool
	transcript []domain.Message
	online     []domain.Participant
	sinks      map[string]contract.EventSink
}

func newFakeService() *fakeService {
	return &fakeService{
		accept: true,
		online: []domain.Participant{
			{ID: domain.CurrentUserID, Name: "Me", Title: "Administrator", Workshop: "Management"},
			{ID: "1", Name: "Zhang San", Title: "Shop director", Workshop: "Injection Molding"},
		},
		sinks: make(map[string]contract.EventSink),
	}
}

func (f *fakeService) Submit(_ context.Context, text string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, text)
	return f.accept, nil
}

func (f *fakeService) SetDraft(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = text
}

func (f *fakeService) Draft() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *fakeService) Sending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sending
}

func (f *fakeService) Transcript() []domain.Message { return f.transcript }

func (f *fakeService) Online() []domain.Participant { return f.online }

func (f *fakeService) Join(sink contract.EventSink) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := string(rune('a' + len(f.sinks)))
	f.sinks[id] = sink
	return id
}

func (f *fakeService) Leave(viewerID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sinks, viewerID)
}

func (f *fakeService) Submitted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.submitted...)
}

// deliver hands e to every joined sink, the way the feed fan-out does.
func (f *fakeService) deliver(ctx context.Context, e event.DomainEvent) {
	f.mu.Lock()
	if changed, ok := e.(event.TranscriptChanged); ok && changed.Cause == event.CauseSent {
		f.sending = false
	}
	sinks := make([]contract.EventSink, 0, len(f.sinks))
	for _, sink := range f.sinks {
		sinks = append(sinks, sink)
	}
	f.mu.Unlock()
	for _, sink := range sinks {
		_ = sink.Consume(ctx, e)
	}
}

// Package projection builds local timelines from observed events.
// Handles ordering and the view state derived from change notifications.
// Does not emit events or interact with UI directly.
package projection

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/domain/event"
	"context"
	"slices"
	"sync"
)

var _ contract.EventSink = (*Timeline)(nil)

// TimelineView is what a viewer renders at a given instant.
type TimelineView struct {
	Loading bool
	Sending bool
	// ScrollTarget is the id the view must bring into sight, 0 when empty
	ScrollTarget  domain.MessageID
	Messages      []domain.Message
	Notifications uint64
}

// Timeline holds the local timeline of one viewer.
type Timeline struct {
	mu    sync.RWMutex
	Owner string
	view  TimelineView
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{
		Owner: owner,
		view:  TimelineView{Loading: true},
	}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch evt := e.(type) {
	case event.TranscriptChanged:
		t.view.Loading = false
		t.view.Messages = evt.Snapshot
		t.view.Notifications++
		if latest, ok := evt.Latest(); ok {
			t.view.ScrollTarget = latest.ID
		}
		if evt.Cause == event.CauseSent {
			t.view.Sending = false
		}
	case event.SendAccepted:
		t.view.Sending = true
	case event.FeedStopped:
		t.view.Sending = false
	}
	return nil
}

// View returns a copy of the current view state.
func (t *Timeline) View() TimelineView {
	t.mu.RLock()
	defer t.mu.RUnlock()
	view := t.view
	view.Messages = slices.Clone(t.view.Messages)
	return view
}

package runtime

import (
	"chat-feed/contract"
	"slices"
	"sync"
)

var _ contract.IRegistry = (*Registry)(nil)

// Registry maps each connected viewer to the sink rendering its transcript.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink // map viewer -> Sink
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]contract.EventSink),
	}
}

// Sinks returns the sinks of every connected viewer in subscription order.
func (r *Registry) Sinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks := make([]contract.EventSink, 0, len(r.order))
	for _, viewerID := range r.order {
		sinks = append(sinks, r.sessions[viewerID])
	}
	return sinks
}

// Subscribe registers the sink of a viewer.
// Subscribing again with the same id replaces the sink but keeps its position.
func (r *Registry) Subscribe(viewerID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[viewerID]; !ok {
		r.order = append(r.order, viewerID)
	}
	r.sessions[viewerID] = sink
}

func (r *Registry) Unsubscribe(viewerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[viewerID]; !ok {
		return
	}
	delete(r.sessions, viewerID)
	r.order = slices.DeleteFunc(r.order, func(id string) bool { return id == viewerID })
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

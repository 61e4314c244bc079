package observability

import (
	"chat-feed/domain/event"
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// FeedStatsSnapshot aggregates feed counters for the UI and the reporter.
type FeedStatsSnapshot struct {
	Seeded         uint64    `json:"seeded"`
	Injected       uint64    `json:"injected"`
	Sent           uint64    `json:"sent"`
	SkippedTicks   uint64    `json:"skipped_ticks"`
	DroppedSubmits uint64    `json:"dropped_submits"`
	Transcript     int       `json:"transcript"`
	LastChange     time.Time `json:"last_change"`
	AllocMemMb     uint64    `json:"alloc_mem_mb"`
	NumGC          uint32    `json:"num_gc"`
}

// FeedStats counts what happens in the feed. It is an event sink.
type FeedStats struct {
	seeded         atomic.Uint64
	injected       atomic.Uint64
	sent           atomic.Uint64
	skippedTicks   atomic.Uint64
	droppedSubmits atomic.Uint64

	mu         sync.RWMutex
	transcript int
	lastChange time.Time
}

func NewFeedStats() *FeedStats {
	return &FeedStats{}
}

func (s *FeedStats) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.TranscriptChanged:
		switch evt.Cause {
		case event.CauseSeeded:
			s.seeded.Add(uint64(len(evt.Added)))
		case event.CauseInjected:
			s.injected.Add(uint64(len(evt.Added)))
		case event.CauseSent:
			s.sent.Add(uint64(len(evt.Added)))
		}
		s.mu.Lock()
		s.transcript = len(evt.Snapshot)
		s.lastChange = evt.At
		s.mu.Unlock()
	case event.InjectionSkipped:
		s.skippedTicks.Add(1)
	case event.SendDropped:
		s.droppedSubmits.Add(1)
	}
	return nil
}

// GetLatest returns the counters along with Go memory metrics.
func (s *FeedStats) GetLatest() FeedStatsSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return FeedStatsSnapshot{
		Seeded:         s.seeded.Load(),
		Injected:       s.injected.Load(),
		Sent:           s.sent.Load(),
		SkippedTicks:   s.skippedTicks.Load(),
		DroppedSubmits: s.droppedSubmits.Load(),
		Transcript:     s.transcript,
		LastChange:     s.lastChange,
		AllocMemMb:     m.Alloc / 1024 / 1024,
		NumGC:          m.NumGC,
	}
}

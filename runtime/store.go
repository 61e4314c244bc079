package runtime

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/domain/event"
	"context"
	"log/slog"
	"sync"

	"github.com/benbjohnson/clock"
)

var _ contract.IMessageStore = (*MessageStore)(nil)

// MessageStore guards the room and raises a TranscriptChanged for every
// successful mutation.
//
// writeMu serializes a mutation together with its notification, so sinks see
// changes in mutation order. Reads only take mu, which lets a sink call
// Snapshot while it is being notified.
type MessageStore struct {
	log      *slog.Logger
	clock    clock.Clock
	sink     contract.EventSink
	writeMu  sync.Mutex
	mu       sync.RWMutex
	room     *domain.Room
	sequence uint64
}

func NewMessageStore(log *slog.Logger, clk clock.Clock, sink contract.EventSink, historyLimit int) *MessageStore {
	return &MessageStore{
		log:   log,
		clock: clk,
		sink:  sink,
		room:  domain.NewRoom(historyLimit),
	}
}

// Seed stores the initial history. A second call fails with ErrAlreadySeeded
// and leaves the transcript untouched.
func (s *MessageStore) Seed(ctx context.Context, messages []domain.Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	added, err := s.room.Seed(messages)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	changed := s.changed(event.CauseSeeded, added)
	s.mu.Unlock()

	s.notify(ctx, changed)
	return nil
}

// Append adds one message at the end of the transcript and returns its id.
func (s *MessageStore) Append(ctx context.Context, message domain.Message) (domain.MessageID, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	stored, err := s.room.PostMessage(message)
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}
	cause := event.CauseInjected
	if stored.IsSelf() {
		cause = event.CauseSent
	}
	changed := s.changed(cause, []domain.Message{stored})
	s.mu.Unlock()

	s.notify(ctx, changed)
	return stored.ID, nil
}

// Snapshot returns a copy of the transcript in delivery order.
func (s *MessageStore) Snapshot() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room.Messages()
}

func (s *MessageStore) Seeded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room.Seeded()
}

func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room.Len()
}

func (s *MessageStore) LastID() domain.MessageID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room.LastID()
}

// changed must be called with mu held.
func (s *MessageStore) changed(cause event.ChangeCause, added []domain.Message) event.TranscriptChanged {
	s.sequence++
	return event.TranscriptChanged{
		Cause:    cause,
		Added:    added,
		Snapshot: s.room.Messages(),
		Sequence: s.sequence,
		At:       s.clock.Now(),
	}
}

func (s *MessageStore) notify(ctx context.Context, evt event.TranscriptChanged) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Consume(ctx, evt); err != nil {
		s.log.Warn("Failed to notify transcript change", "sequence", evt.Sequence, "error", err)
	}
}

package event

import (
	"chat-feed/domain"
	"time"
)

type DomainEvent interface {
	Name() string
	OccurredAt() time.Time
}

type ChangeCause string

const (
	CauseSeeded   ChangeCause = "seeded"
	CauseInjected ChangeCause = "injected"
	CauseSent     ChangeCause = "sent"
)

// TranscriptChanged is the change notification raised once per successful
// seed or append, in mutation order. Snapshot is the full retained transcript
// right after the mutation.
type TranscriptChanged struct {
	Cause    ChangeCause
	Added    []domain.Message
	Snapshot []domain.Message
	Sequence uint64
	At       time.Time
}

func (e TranscriptChanged) Name() string          { return "TranscriptChanged" }
func (e TranscriptChanged) OccurredAt() time.Time { return e.At }

// Latest returns the newest message, the one a view scrolls to.
func (e TranscriptChanged) Latest() (domain.Message, bool) {
	if len(e.Snapshot) == 0 {
		return domain.Message{}, false
	}
	return e.Snapshot[len(e.Snapshot)-1], true
}

// FeedStarted is raised once the feed loop has armed its timers.
type FeedStarted struct {
	Resumed bool // history was already seeded, the feed went straight to active
	At      time.Time
}

func (e FeedStarted) Name() string          { return "FeedStarted" }
func (e FeedStarted) OccurredAt() time.Time { return e.At }

type FeedStopped struct {
	PendingSendCancelled bool
	At                   time.Time
}

func (e FeedStopped) Name() string          { return "FeedStopped" }
func (e FeedStopped) OccurredAt() time.Time { return e.At }

// InjectionSkipped is raised on an injection tick where no peer spoke.
type InjectionSkipped struct {
	Roll float64
	At   time.Time
}

func (e InjectionSkipped) Name() string          { return "InjectionSkipped" }
func (e InjectionSkipped) OccurredAt() time.Time { return e.At }

type SendAccepted struct {
	Content string
	At      time.Time
}

func (e SendAccepted) Name() string          { return "SendAccepted" }
func (e SendAccepted) OccurredAt() time.Time { return e.At }

// SendDropped is raised when a submit is ignored (blank text or a send in flight).
type SendDropped struct {
	Reason error
	At     time.Time
}

func (e SendDropped) Name() string          { return "SendDropped" }
func (e SendDropped) OccurredAt() time.Time { return e.At }

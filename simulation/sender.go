package simulation

import (
	"chat-feed/domain"
	"chat-feed/errors"
	"strings"
	"sync"
	"time"
)

// Censor rewrites outgoing text before it is sent.
type Censor interface {
	Censor(text string) string
}

// SendPipeline is the single-flight path of the local user's messages.
// The text is captured when the send begins; edits made to the draft while
// the send is in flight never change what gets sent.
type SendPipeline struct {
	mu       sync.Mutex
	author   domain.Participant
	censor   Censor
	draft    string
	pending  string
	inFlight bool
}

// NewSendPipeline builds the pipeline for author. censor may be nil.
func NewSendPipeline(author domain.Participant, censor Censor) *SendPipeline {
	return &SendPipeline{author: author, censor: censor}
}

// SetDraft mirrors the input box of the view.
func (s *SendPipeline) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

func (s *SendPipeline) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *SendPipeline) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Begin captures text and enters the in-flight state.
// It fails with ErrEmptyContent on blank text and ErrSendInFlight while a send is pending.
func (s *SendPipeline) Begin(text string) (string, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return "", errors.ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return "", errors.ErrSendInFlight
	}
	if s.censor != nil {
		content = s.censor.Censor(content)
	}
	s.pending = content
	s.inFlight = true
	return content, nil
}

// Complete ends the pending send: it builds the self message,
// clears the draft and goes back to idle.
func (s *SendPipeline) Complete(now time.Time) (domain.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inFlight {
		return domain.Message{}, false
	}
	message := domain.NewMessage(s.author, s.pending, now)
	s.pending = ""
	s.draft = ""
	s.inFlight = false
	return message, true
}

// Abort drops the pending send without producing a message.
func (s *SendPipeline) Abort() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inFlight {
		return "", false
	}
	pending := s.pending
	s.pending = ""
	s.inFlight = false
	return pending, true
}

package services

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/runtime"
	"context"

	"github.com/google/uuid"
)

// IChatService is what a presentation host needs from the feed.
type IChatService interface {
	Submit(ctx context.Context, text string) (bool, error)
	SetDraft(text string)
	Draft() string
	Sending() bool
	Transcript() []domain.Message
	Online() []domain.Participant
	Join(sink contract.EventSink) string
	Leave(viewerID string)
}

var _ IChatService = (*ChatService)(nil)

type ChatService struct {
	orchestrator *runtime.Orchestrator
}

func NewChatService(o *runtime.Orchestrator) *ChatService {
	return &ChatService{orchestrator: o}
}

func (s *ChatService) Submit(ctx context.Context, text string) (bool, error) {
	return s.orchestrator.Submit(ctx, text)
}

func (s *ChatService) SetDraft(text string) {
	s.orchestrator.SetDraft(text)
}

func (s *ChatService) Draft() string {
	return s.orchestrator.Draft()
}

func (s *ChatService) Sending() bool {
	return s.orchestrator.Sending()
}

func (s *ChatService) Transcript() []domain.Message {
	return s.orchestrator.Transcript()
}

// Online lists the connected participants, the current user first.
func (s *ChatService) Online() []domain.Participant {
	return s.orchestrator.Online()
}

// Join subscribes sink to change notifications and returns its viewer id.
func (s *ChatService) Join(sink contract.EventSink) string {
	viewerID := uuid.NewString()
	s.orchestrator.RegisterViewer(viewerID, sink)
	return viewerID
}

func (s *ChatService) Leave(viewerID string) {
	s.orchestrator.UnregisterViewer(viewerID)
}

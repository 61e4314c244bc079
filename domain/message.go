// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"time"
)

// MessageID is the sequence number assigned when a message enters the transcript.
type MessageID int64

// Message represents an immutable chat event.
type Message struct {
	ID        MessageID // zero until appended
	Author    Participant
	Content   string
	CreatedAt time.Time
}

// IsSelf reports whether the local user wrote the message.
func (m Message) IsSelf() bool {
	return m.Author.IsCurrentUser()
}

// NewMessage stamps content with the given time at second resolution.
func NewMessage(author Participant, content string, at time.Time) Message {
	return Message{
		Author:    author,
		Content:   content,
		CreatedAt: at.Truncate(time.Second),
	}
}

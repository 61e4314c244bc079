package domain

import (
	"chat-feed/errors"
	"slices"
	"strings"
)

// Room is the append-only transcript of the chat.
// It assigns sequence ids and keeps messages in delivery order.
// Room is not safe for concurrent use; runtime.MessageStore guards it.
type Room struct {
	messages []Message
	lastID   MessageID
	seeded   bool
	// limit bounds retained messages, 0 keeps everything
	limit int
}

func NewRoom(limit int) *Room {
	return &Room{
		messages: nil,
		limit:    max(limit, 0),
	}
}

// Seed loads the historical messages, ordered by creation time.
// It is accepted once, and only while the room is still empty.
// The returned messages are the ones retained under the limit.
func (r *Room) Seed(messages []Message) ([]Message, error) {
	if r.seeded || r.lastID > 0 {
		return nil, errors.ErrAlreadySeeded
	}
	for _, m := range messages {
		if err := validate(m); err != nil {
			return nil, err
		}
	}

	sorted := slices.Clone(messages)
	slices.SortStableFunc(sorted, func(a, b Message) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	for i := range sorted {
		r.lastID++
		sorted[i].ID = r.lastID
	}

	r.messages = append(r.messages, sorted...)
	r.seeded = true
	r.evict()
	return slices.Clone(r.retained()), nil
}

// PostMessage appends the message at the end of the transcript
// and returns it with its freshly assigned id.
func (r *Room) PostMessage(message Message) (Message, error) {
	if err := validate(message); err != nil {
		return Message{}, err
	}
	r.lastID++
	message.ID = r.lastID
	r.messages = append(r.messages, message)
	r.evict()
	return message, nil
}

// Messages returns a copy of the retained transcript.
func (r *Room) Messages() []Message {
	return slices.Clone(r.retained())
}

func (r *Room) Len() int {
	return len(r.retained())
}

func (r *Room) Seeded() bool {
	return r.seeded
}

// LastID is the id of the most recent message, 0 when nothing was stored yet.
func (r *Room) LastID() MessageID {
	return r.lastID
}

func (r *Room) retained() []Message {
	if r.limit > 0 && len(r.messages) > r.limit {
		return r.messages[len(r.messages)-r.limit:]
	}
	return r.messages
}

// evict compacts the backing slice once it holds twice the limit,
// so eviction stays amortized O(1) per append.
func (r *Room) evict() {
	if r.limit == 0 || len(r.messages) < 2*r.limit {
		return
	}
	r.messages = slices.Clone(r.retained())
}

func validate(m Message) error {
	if m.Author.ID == "" {
		return errors.ErrUnknownAuthor
	}
	if strings.TrimSpace(m.Content) == "" {
		return errors.ErrEmptyContent
	}
	return nil
}

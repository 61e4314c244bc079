package domain

import (
	"chat-feed/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	epoch = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	alice = Participant{ID: "1", Name: "Alice", Title: "Shift lead", Workshop: "Molding"}
	me    = Participant{ID: CurrentUserID, Name: "Me"}
)

func TestRoom_Seed_SortsByCreationTimeAndAssignsIDs(t *testing.T) {
	req := require.New(t)
	room := NewRoom(0)

	// Given history out of order
	history := []Message{
		NewMessage(alice, "third", epoch.Add(-time.Minute)),
		NewMessage(alice, "first", epoch.Add(-3*time.Minute)),
		NewMessage(alice, "second", epoch.Add(-2*time.Minute)),
	}

	// When the room is seeded
	added, err := room.Seed(history)

	// Then messages are ordered ascending with ids 1..3
	req.NoError(err)
	req.Len(added, 3)
	messages := room.Messages()
	req.Equal([]string{"first", "second", "third"}, contents(messages))
	req.Equal([]MessageID{1, 2, 3}, ids(messages))
	req.True(room.Seeded())
	req.Equal(MessageID(3), room.LastID())
}

func TestRoom_Seed_KeepsOrderOfEqualTimestamps(t *testing.T) {
	req := require.New(t)
	room := NewRoom(0)

	// Given two messages at the same minute
	history := []Message{
		NewMessage(alice, "a", epoch),
		NewMessage(alice, "b", epoch),
	}

	// When the room is seeded
	_, err := room.Seed(history)

	// Then the relative order is kept
	req.NoError(err)
	req.Equal([]string{"a", "b"}, contents(room.Messages()))
}

func TestRoom_Seed_Twice_Fails(t *testing.T) {
	req := require.New(t)
	room := NewRoom(0)

	// Given a seeded room
	_, err := room.Seed([]Message{NewMessage(alice, "hello", epoch)})
	req.NoError(err)

	// When seeding again
	_, err = room.Seed([]Message{NewMessage(alice, "again", epoch)})

	// Then the room is untouched
	req.ErrorIs(err, errors.ErrAlreadySeeded)
	req.Equal([]string{"hello"}, contents(room.Messages()))
}

func TestRoom_Seed_AfterPost_Fails(t *testing.T) {
	req := require.New(t)
	room := NewRoom(0)

	// Given a message posted before any seeding
	_, err := room.PostMessage(NewMessage(me, "early", epoch))
	req.NoError(err)

	// When seeding
	_, err = room.Seed([]Message{NewMessage(alice, "late", epoch)})

	// Then it is rejected
	req.ErrorIs(err, errors.ErrAlreadySeeded)
}

func TestRoom_Seed_Empty_History(t *testing.T) {
	req := require.New(t)
	room := NewRoom(0)

	added, err := room.Seed(nil)

	req.NoError(err)
	req.Empty(added)
	req.True(room.Seeded())
	req.Zero(room.Len())
}

func TestRoom_PostMessage_AppendsAtTheEnd(t *testing.T) {
	req := require.New(t)
	room := NewRoom(0)
	_, err := room.Seed([]Message{NewMessage(alice, "seeded", epoch.Add(-time.Hour))})
	req.NoError(err)

	// When a message older than the seed is posted
	stored, err := room.PostMessage(NewMessage(me, "hi", epoch.Add(-2*time.Hour)))

	// Then it still lands last, with the next id
	req.NoError(err)
	req.Equal(MessageID(2), stored.ID)
	req.Equal([]string{"seeded", "hi"}, contents(room.Messages()))
	req.True(room.Messages()[1].IsSelf())
}

func TestRoom_PostMessage_Rejects_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		message Message
		err     error
	}{
		{name: "blank content", message: NewMessage(alice, "   ", epoch), err: errors.ErrEmptyContent},
		{name: "no author", message: NewMessage(Participant{Name: "ghost"}, "boo", epoch), err: errors.ErrUnknownAuthor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			room := NewRoom(0)

			_, err := room.PostMessage(tt.message)

			req.ErrorIs(err, tt.err)
			req.Zero(room.Len())
			req.Zero(room.LastID())
		})
	}
}

func TestRoom_Messages_ReturnsACopy(t *testing.T) {
	req := require.New(t)
	room := NewRoom(0)
	_, err := room.PostMessage(NewMessage(alice, "original", epoch))
	req.NoError(err)

	// When the caller mutates the snapshot
	snapshot := room.Messages()
	snapshot[0].Content = "changed"

	// Then the room is unaffected
	req.Equal("original", room.Messages()[0].Content)
}

func TestRoom_Limit_EvictsOldestAndNeverReusesIDs(t *testing.T) {
	req := require.New(t)
	room := NewRoom(3)

	// When seven messages are posted in a room retaining three
	for i := range 7 {
		_, err := room.PostMessage(NewMessage(alice, string(rune('a'+i)), epoch))
		req.NoError(err)
	}

	// Then only the three newest remain
	req.Equal(3, room.Len())
	req.Equal([]string{"e", "f", "g"}, contents(room.Messages()))
	req.Equal([]MessageID{5, 6, 7}, ids(room.Messages()))
	req.LessOrEqual(len(room.messages), 6)
	req.Equal(MessageID(7), room.LastID())
}

func TestRoom_Seed_BeyondLimit_ReturnsOnlyRetainedMessages(t *testing.T) {
	req := require.New(t)
	room := NewRoom(3)

	// Given five historical messages for a room retaining three
	history := make([]Message, 0, 5)
	for i := range 5 {
		history = append(history, NewMessage(alice, string(rune('a'+i)), epoch.Add(time.Duration(i)*time.Minute)))
	}

	// When the room is seeded
	added, err := room.Seed(history)

	// Then only the newest three are reported and kept, ids still count the dropped ones
	req.NoError(err)
	req.Equal([]string{"c", "d", "e"}, contents(added))
	req.Equal([]MessageID{3, 4, 5}, ids(added))
	req.Equal(room.Messages(), added)
}

func TestNewMessage_TruncatesToTheSecond(t *testing.T) {
	req := require.New(t)

	msg := NewMessage(alice, "hello", epoch.Add(1500*time.Millisecond))

	req.Equal(epoch.Add(time.Second), msg.CreatedAt)
	req.Zero(msg.ID)
	req.False(msg.IsSelf())
}

func contents(messages []Message) []string {
	res := make([]string, 0, len(messages))
	for _, m := range messages {
		res = append(res, m.Content)
	}
	return res
}

func ids(messages []Message) []MessageID {
	res := make([]MessageID, 0, len(messages))
	for _, m := range messages {
		res = append(res, m.ID)
	}
	return res
}

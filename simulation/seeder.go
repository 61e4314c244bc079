package simulation

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"slices"
	"time"
)

// HistorySeeder fabricates the transcript shown when the chat opens:
// random peers saying random lines at random minutes of the lookback window.
type HistorySeeder struct {
	directory *domain.Directory
	random    contract.Random
	size      int
	lookback  time.Duration
}

func NewHistorySeeder(directory *domain.Directory, random contract.Random, size int, lookback time.Duration) *HistorySeeder {
	return &HistorySeeder{
		directory: directory,
		random:    random,
		size:      max(size, 0),
		lookback:  lookback,
	}
}

// Generate returns the seeded history sorted by creation time.
// Each message draws a peer, a line, then a whole number of minutes in [0, lookback).
func (s *HistorySeeder) Generate(now time.Time) []domain.Message {
	minutes := int(s.lookback / time.Minute)
	messages := make([]domain.Message, 0, s.size)
	for range s.size {
		peer := s.directory.Peer(s.random.IntN(s.directory.PeerCount()))
		content := s.directory.Content(s.random.IntN(s.directory.ContentCount()))
		var offset time.Duration
		if minutes > 0 {
			offset = time.Duration(s.random.IntN(minutes)) * time.Minute
		}
		messages = append(messages, domain.NewMessage(peer, content, now.Add(-offset)))
	}

	slices.SortStableFunc(messages, func(a, b domain.Message) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return messages
}

package simulation

import (
	"chat-feed/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHistorySeeder_Generate_SortsByAge(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	random := mocks.NewMockRandom(ctrl)
	directory := newTestDirectory(t)

	// Given three messages drawn 30, 5 and 50 minutes in the past
	gomock.InOrder(
		random.EXPECT().IntN(3).Return(0), random.EXPECT().IntN(3).Return(0), random.EXPECT().IntN(1440).Return(30),
		random.EXPECT().IntN(3).Return(1), random.EXPECT().IntN(3).Return(1), random.EXPECT().IntN(1440).Return(5),
		random.EXPECT().IntN(3).Return(2), random.EXPECT().IntN(3).Return(2), random.EXPECT().IntN(1440).Return(50),
	)
	seeder := NewHistorySeeder(directory, random, 3, 24*time.Hour)

	// When the history is generated
	messages := seeder.Generate(epoch)

	// Then the oldest message comes first
	req.Len(messages, 3)
	req.Equal(epoch.Add(-50*time.Minute), messages[0].CreatedAt)
	req.Equal(epoch.Add(-30*time.Minute), messages[1].CreatedAt)
	req.Equal(epoch.Add(-5*time.Minute), messages[2].CreatedAt)
	req.Equal("Clara", messages[0].Author.Name)
	req.Equal("Stock is fine.", messages[0].Content)
	for _, m := range messages {
		req.False(m.IsSelf())
		req.Zero(m.ID)
	}
}

func TestHistorySeeder_Generate_SecondResolution(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	random := mocks.NewMockRandom(ctrl)
	random.EXPECT().IntN(gomock.Any()).Return(0).AnyTimes()

	seeder := NewHistorySeeder(newTestDirectory(t), random, 2, time.Hour)
	messages := seeder.Generate(epoch.Add(750 * time.Millisecond))

	req.Len(messages, 2)
	req.Equal(epoch, messages[0].CreatedAt)
}

func TestHistorySeeder_Generate_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No draw is expected at all
	seeder := NewHistorySeeder(newTestDirectory(t), mocks.NewMockRandom(ctrl), 0, time.Hour)
	require.Empty(t, seeder.Generate(epoch))
}

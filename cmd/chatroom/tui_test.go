package main

import (
	"chat-feed/domain"
	"chat-feed/domain/event"
	"chat-feed/projection"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func sizedModel(t *testing.T, service *fakeService, timeline *projection.Timeline) chatModel {
	t.Helper()
	model, _ := newChatModel(context.Background(), service, timeline).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(chatModel)
}

func TestChatModel_Shows_Loading_Then_Messages(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	timeline := projection.NewTimeline("tui")
	m := sizedModel(t, service, timeline)

	// Given the history is not there yet
	req.Contains(m.View(), "Loading history...")
	req.Contains(m.View(), "Online (2)")

	// When the seed notification reaches the timeline then the program
	zhang := domain.Participant{ID: "1", Name: "Zhang San", Title: "Shop director", Workshop: "Injection Molding"}
	seeded := []domain.Message{{ID: 1, Author: zhang, Content: "Stock is fine.", CreatedAt: time.Now()}}
	changed := event.TranscriptChanged{Cause: event.CauseSeeded, Added: seeded, Snapshot: seeded, Sequence: 1}
	req.NoError(timeline.Consume(context.Background(), changed))
	model, _ := m.Update(feedEventMsg{event: changed})
	m = model.(chatModel)

	// Then the message is rendered
	view := m.View()
	req.NotContains(view, "Loading history...")
	req.Contains(view, "Stock is fine.")
	req.Contains(view, "1 messages")
}

func TestChatModel_Enter_Submits_Input(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	m := sizedModel(t, service, projection.NewTimeline("tui"))

	// Given the user typed hi
	for _, r := range "hi" {
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = model.(chatModel)
	}
	req.Equal("hi", service.Draft())

	// When Enter is pressed
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(chatModel)

	// Then the submit command sends the text
	req.NotNil(cmd)
	done, ok := cmd().(submitDoneMsg)
	req.True(ok)
	req.True(done.accepted)
	req.Equal([]string{"hi"}, service.Submitted())
}

func TestChatModel_Enter_Ignored_While_Sending_Or_Blank(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	m := sizedModel(t, service, projection.NewTimeline("tui"))

	// Blank input
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	req.Nil(cmd)

	// Send in flight
	m.input.SetValue("again")
	service.sending = true
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	req.Nil(cmd)
	req.Empty(service.Submitted())
}

func TestChatModel_Clears_Input_When_Send_Lands(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	timeline := projection.NewTimeline("tui")
	m := sizedModel(t, service, timeline)
	m.input.SetValue("hello world")

	// Given the pipeline cleared its draft
	service.SetDraft("")
	me := domain.Participant{ID: domain.CurrentUserID, Name: "Me"}
	sent := []domain.Message{{ID: 1, Author: me, Content: "hello", CreatedAt: time.Now()}}
	changed := event.TranscriptChanged{Cause: event.CauseSent, Added: sent, Snapshot: sent, Sequence: 1}
	req.NoError(timeline.Consume(context.Background(), changed))

	// When the notification arrives
	model, _ := m.Update(feedEventMsg{event: changed})
	m = model.(chatModel)

	// Then the input box is empty
	req.Empty(m.input.Value())
}

package main

import (
	"bytes"
	"chat-feed/domain"
	"chat-feed/domain/event"
	"chat-feed/observability"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunHeadless_Submits_Lines_And_Runs_Commands(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	stats := observability.NewFeedStats()
	var out bytes.Buffer
	started := false

	// Given a script with a message, two commands and a blank line
	in := strings.NewReader("hello\n/who\n\n/stats\n")

	// When it is played
	err := runHeadless(context.Background(), service, stats, func() { started = true }, in, &out)

	// Then the feed was started and both lines were submitted
	req.NoError(err)
	req.True(started)
	req.Equal([]string{"hello", ""}, service.Submitted())
	req.Equal("", service.Draft())

	// And the commands printed their tables
	output := out.String()
	req.Contains(output, "Zhang San")
	req.Contains(output, "Me (you)")
	req.Contains(output, "Dropped submits")

	// And the viewer left on exit
	req.Empty(service.sinks)
}

func TestRunHeadless_Quit(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	var out bytes.Buffer

	err := runHeadless(context.Background(), service, observability.NewFeedStats(), func() {},
		strings.NewReader("/quit\nnever sent\n"), &out)

	req.NoError(err)
	req.Empty(service.Submitted())
}

func TestRunHeadless_Reports_Ignored_Submit(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	service.accept = false
	var out bytes.Buffer

	err := runHeadless(context.Background(), service, observability.NewFeedStats(), func() {},
		strings.NewReader("too fast\n"), &out)

	req.NoError(err)
	req.Contains(out.String(), "message ignored")
}

func TestTranscriptPrinter_Prints_Added_Messages(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	printer := newTranscriptPrinter(&out)
	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.Local)
	zhang := domain.Participant{ID: "1", Name: "Zhang San", Title: "Shop director", Workshop: "Injection Molding"}

	err := printer.Consume(context.Background(), event.TranscriptChanged{
		Cause: event.CauseInjected,
		Added: []domain.Message{domain.NewMessage(zhang, "Stock is fine.", at)},
	})

	req.NoError(err)
	req.Contains(out.String(), "Zhang San")
	req.Contains(out.String(), "Injection Molding - Shop director")
	req.Contains(out.String(), "2026-03-02 09:30:00")
	req.Contains(out.String(), "Stock is fine.")
	req.Equal(1, strings.Count(out.String(), "\n"))
}

func TestRunHeadless_Waits_For_Pending_Send_At_End_Of_Input(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	var out bytes.Buffer
	var outMu sync.Mutex

	// Given a send still in flight when the input runs out
	service.sending = true
	done := make(chan error, 1)
	go func() {
		done <- runHeadless(context.Background(), service, observability.NewFeedStats(), func() {},
			strings.NewReader("last words\n"), lockedWriter{mu: &outMu, w: &out})
	}()

	// Then the session stays open
	select {
	case <-done:
		req.FailNow("headless session returned before the send landed")
	case <-time.After(50 * time.Millisecond):
	}

	// When the send lands
	me := service.online[0]
	service.deliver(context.Background(), event.TranscriptChanged{
		Cause: event.CauseSent,
		Added: []domain.Message{domain.NewMessage(me, "last words", time.Now())},
	})

	// Then the session ends with the message printed
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.FailNow("headless session did not return after the send landed")
	}
	outMu.Lock()
	defer outMu.Unlock()
	req.Contains(out.String(), "last words")
}

func TestRunHeadless_Stops_Waiting_When_Feed_Stops(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	var out bytes.Buffer
	var outMu sync.Mutex

	service.sending = true
	done := make(chan error, 1)
	go func() {
		done <- runHeadless(context.Background(), service, observability.NewFeedStats(), func() {},
			strings.NewReader(""), lockedWriter{mu: &outMu, w: &out})
	}()
	time.Sleep(50 * time.Millisecond)

	// When the feed is disposed with the send still pending
	service.mu.Lock()
	service.sending = false
	service.mu.Unlock()
	service.deliver(context.Background(), event.FeedStopped{PendingSendCancelled: true})

	// Then the session ends and says the message was lost
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.FailNow("headless session did not return after the feed stopped")
	}
	outMu.Lock()
	defer outMu.Unlock()
	req.Contains(out.String(), "pending message was not sent")
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

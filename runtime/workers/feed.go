package workers

import (
	"chat-feed/contract"
	"chat-feed/domain/event"
	"chat-feed/errors"
	"chat-feed/simulation"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

var _ contract.Worker = (*FeedWorker)(nil)

type submitRequest struct {
	text  string
	reply chan bool
}

// FeedWorker is the event loop of the chat feed.
//
// Its goroutine owns the history timer, the injection ticker and the send
// timer, and it is the only writer of the message store. Timer callbacks are
// handled one at a time by the select loop, so message ids follow the order
// in which completions are handled, not the order in which they were started.
// Cancelling the context disposes of every timer, the in-flight send included.
type FeedWorker struct {
	log      *slog.Logger
	clock    clock.Clock
	store    contract.IMessageStore
	sink     contract.EventSink
	seeder   *simulation.HistorySeeder
	injector *simulation.PeerInjector
	pipeline *simulation.SendPipeline
	settings simulation.Settings
	requests chan submitRequest
	stopped  chan struct{}
	stopOnce sync.Once
}

func NewFeedWorker(
	log *slog.Logger,
	clk clock.Clock,
	store contract.IMessageStore,
	sink contract.EventSink,
	seeder *simulation.HistorySeeder,
	injector *simulation.PeerInjector,
	pipeline *simulation.SendPipeline,
	settings simulation.Settings,
) *FeedWorker {
	return &FeedWorker{
		log:      log,
		clock:    clk,
		store:    store,
		sink:     sink,
		seeder:   seeder,
		injector: injector,
		pipeline: pipeline,
		settings: settings,
		requests: make(chan submitRequest),
		stopped:  make(chan struct{}),
	}
}

// feedTimers are the cancellable handles owned by one Run.
type feedTimers struct {
	seed   *clock.Timer
	send   *clock.Timer
	ticker *clock.Ticker
}

func (t *feedTimers) stop() {
	if t.seed != nil {
		t.seed.Stop()
		t.seed = nil
	}
	if t.send != nil {
		t.send.Stop()
		t.send = nil
	}
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

func timerC(t *clock.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

func tickerC(t *clock.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

func (w *FeedWorker) Run(ctx context.Context) error {
	var timers feedTimers
	defer timers.stop()

	// A restart after a panic loses the send timer, the captured text goes with it
	if pending, ok := w.pipeline.Abort(); ok {
		w.log.Warn("Dropping send interrupted by a restart", "content", pending)
	}

	resumed := w.store.Seeded()
	if resumed {
		timers.ticker = w.activate()
	} else {
		timers.seed = w.clock.Timer(w.settings.SeedDelay)
	}
	w.log.Debug("Feed started", "resumed", resumed)
	w.publish(ctx, event.FeedStarted{Resumed: resumed, At: w.clock.Now()})

	for {
		select {
		case <-ctx.Done():
			timers.stop()
			_, cancelled := w.pipeline.Abort()
			w.stopOnce.Do(func() { close(w.stopped) })
			w.log.Debug("Feed stopped", "pending_send_cancelled", cancelled)
			w.publish(context.WithoutCancel(ctx), event.FeedStopped{PendingSendCancelled: cancelled, At: w.clock.Now()})
			return ctx.Err()

		case <-timerC(timers.seed):
			timers.seed = nil
			// The ticker is armed before the seed notification goes out
			timers.ticker = w.activate()
			w.seed(ctx)

		case <-tickerC(timers.ticker):
			w.tick(ctx)

		case req := <-w.requests:
			accepted := w.begin(ctx, req.text)
			if accepted {
				timers.send = w.clock.Timer(w.settings.SendLatency)
			}
			req.reply <- accepted

		case <-timerC(timers.send):
			timers.send = nil
			w.complete(ctx)
		}
	}
}

// Submit hands the user's text to the loop and reports whether a send started.
// Blank text, a send already in flight and a history still loading are
// ignored, not errors.
// When it returns true the send latency is already running.
func (w *FeedWorker) Submit(ctx context.Context, text string) (bool, error) {
	req := submitRequest{text: text, reply: make(chan bool, 1)}
	select {
	case w.requests <- req:
	case <-w.stopped:
		return false, errors.ErrFeedStopped
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case accepted := <-req.reply:
		return accepted, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (w *FeedWorker) activate() *clock.Ticker {
	w.injector.Activate()
	return w.clock.Ticker(w.settings.TickPeriod)
}

func (w *FeedWorker) seed(ctx context.Context) {
	messages := w.seeder.Generate(w.clock.Now())
	if err := w.store.Seed(ctx, messages); err != nil {
		w.log.Error("Failed to seed transcript", "error", err)
		return
	}
	w.log.Info("Transcript seeded", "count", len(messages))
}

func (w *FeedWorker) tick(ctx context.Context) {
	now := w.clock.Now()
	message, roll, ok := w.injector.Tick(now)
	if !ok {
		w.publish(ctx, event.InjectionSkipped{Roll: roll, At: now})
		return
	}
	id, err := w.store.Append(ctx, message)
	if err != nil {
		w.log.Error("Failed to inject peer message", "author", message.Author.ID, "error", err)
		return
	}
	w.log.Debug("Peer message injected", "id", id, "author", message.Author.ID, "roll", roll)
}

func (w *FeedWorker) begin(ctx context.Context, text string) bool {
	now := w.clock.Now()
	var content string
	err := errors.ErrFeedLoading
	if w.store.Seeded() {
		content, err = w.pipeline.Begin(text)
	}
	if err != nil {
		w.log.Debug("Submit ignored", "reason", err)
		w.publish(ctx, event.SendDropped{Reason: err, At: now})
		return false
	}
	w.publish(ctx, event.SendAccepted{Content: content, At: now})
	return true
}

func (w *FeedWorker) complete(ctx context.Context) {
	message, ok := w.pipeline.Complete(w.clock.Now())
	if !ok {
		return
	}
	id, err := w.store.Append(ctx, message)
	if err != nil {
		w.log.Error("Failed to append sent message", "error", err)
		return
	}
	w.log.Debug("Message sent", "id", id)
}

func (w *FeedWorker) publish(ctx context.Context, evt event.DomainEvent) {
	if w.sink == nil {
		return
	}
	if err := w.sink.Consume(ctx, evt); err != nil {
		w.log.Warn("Failed to publish feed event", "event", evt.Name(), "error", err)
	}
}

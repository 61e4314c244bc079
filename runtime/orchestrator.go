package runtime

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/runtime/workers"
	"chat-feed/simulation"
	"context"
	"log/slog"

	"github.com/benbjohnson/clock"
)

// Orchestrator wires the feed: the store, the fan-out, the simulation
// components and the worker driving them under supervision.
// It holds no business rule of its own.
type Orchestrator struct {
	log        *slog.Logger
	supervisor contract.ISupervisor
	registry   contract.IRegistry
	directory  *domain.Directory
	fanout     *workers.EventFanout
	store      *MessageStore
	pipeline   *simulation.SendPipeline
	feed       *workers.FeedWorker
}

// NewOrchestrator builds every feed component. censor may be nil.
func NewOrchestrator(log *slog.Logger, clk clock.Clock, supervisor *workers.Supervisor,
	registry *Registry, directory *domain.Directory, random contract.Random,
	censor simulation.Censor, settings simulation.Settings, historyLimit int) *Orchestrator {
	fanout := workers.NewEventFanout(log, registry)
	store := NewMessageStore(log, clk, fanout, historyLimit)
	seeder := simulation.NewHistorySeeder(directory, random, settings.HistorySize, settings.HistoryLookback)
	injector := simulation.NewPeerInjector(directory, random, settings.SkipProbability)
	pipeline := simulation.NewSendPipeline(directory.CurrentUser(), censor)
	feed := workers.NewFeedWorker(log, clk, store, fanout, seeder, injector, pipeline, settings)
	supervisor.Add(feed)

	return &Orchestrator{
		log:        log,
		supervisor: supervisor,
		registry:   registry,
		directory:  directory,
		fanout:     fanout,
		store:      store,
		pipeline:   pipeline,
		feed:       feed,
	}
}

// Add registers sinks that receive every feed event for the whole process lifetime.
// Call it before Start.
func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.fanout.Add(sinks...)
}

// Supervise registers extra workers to run beside the feed. Call it before Start.
func (o *Orchestrator) Supervise(ws ...contract.Worker) {
	o.supervisor.Add(ws...)
}

// Start runs the feed under supervision and blocks until ctx is cancelled or Stop is called.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.log.Info("Starting orchestrator and all supervised workers",
		"peers", o.directory.PeerCount(), "content", o.directory.ContentCount())
	o.supervisor.Run(ctx)
	return nil
}

// Stop initiates a graceful shutdown: every timer is cancelled,
// a send still in flight included.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}

// Submit sends text as the current user. It reports false when the text
// was ignored: blank, or another send still in flight.
func (o *Orchestrator) Submit(ctx context.Context, text string) (bool, error) {
	return o.feed.Submit(ctx, text)
}

func (o *Orchestrator) SetDraft(text string) {
	o.pipeline.SetDraft(text)
}

func (o *Orchestrator) Draft() string {
	return o.pipeline.Draft()
}

// Sending reports whether a send is in flight.
func (o *Orchestrator) Sending() bool {
	return o.pipeline.InFlight()
}

func (o *Orchestrator) Transcript() []domain.Message {
	return o.store.Snapshot()
}

func (o *Orchestrator) Seeded() bool {
	return o.store.Seeded()
}

func (o *Orchestrator) Online() []domain.Participant {
	return o.directory.Online()
}

func (o *Orchestrator) CurrentUser() domain.Participant {
	return o.directory.CurrentUser()
}

func (o *Orchestrator) RegisterViewer(viewerID string, sink contract.EventSink) {
	o.registry.Subscribe(viewerID, sink)
}

// UnregisterViewer disconnects a viewer.
func (o *Orchestrator) UnregisterViewer(viewerID string) {
	o.registry.Unsubscribe(viewerID)
}

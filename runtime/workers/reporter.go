package workers

import (
	"chat-feed/contract"
	"chat-feed/observability"
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

var _ contract.Worker = (*ReporterWorker)(nil)

// ReporterWorker logs the feed counters at a fixed interval.
type ReporterWorker struct {
	log      *slog.Logger
	clock    clock.Clock
	stats    *observability.FeedStats
	interval time.Duration
}

func NewReporterWorker(log *slog.Logger, clk clock.Clock, stats *observability.FeedStats, interval time.Duration) *ReporterWorker {
	return &ReporterWorker{log: log, clock: clk, stats: stats, interval: interval}
}

// Run starts the reporting loop until context cancellation
func (w *ReporterWorker) Run(ctx context.Context) error {
	startTime := w.clock.Now()
	ticker := w.clock.Ticker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.report(startTime)
			return ctx.Err()
		case <-ticker.C:
			w.report(startTime)
		}
	}
}

func (w *ReporterWorker) report(startTime time.Time) {
	stats := w.stats.GetLatest()
	w.log.Info("Feed stats",
		"uptime", w.clock.Since(startTime).Round(time.Second).String(),
		"transcript", stats.Transcript,
		"seeded", stats.Seeded,
		"injected", stats.Injected,
		"sent", stats.Sent,
		"skipped_ticks", stats.SkippedTicks,
		"dropped_submits", stats.DroppedSubmits,
		"mem_mb", stats.AllocMemMb,
	)
}

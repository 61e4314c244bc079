package main

import (
	"bufio"
	"chat-feed/domain"
	"chat-feed/domain/event"
	"chat-feed/observability"
	"chat-feed/services"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	selfStyle   = color.New(color.FgGreen, color.OpBold)
	peerStyle   = color.New(color.FgCyan, color.OpBold)
	mutedStyle  = color.New(color.FgGray)
	noticeStyle = color.New(color.FgYellow)
)

// transcriptPrinter prints every message entering the transcript, one line each.
// settled is signalled whenever a send lands or the feed stops.
type transcriptPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	settled chan struct{}
}

func newTranscriptPrinter(out io.Writer) *transcriptPrinter {
	return &transcriptPrinter{out: out, settled: make(chan struct{}, 1)}
}

func (p *transcriptPrinter) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.TranscriptChanged:
		if evt.Cause == event.CauseSent {
			defer p.settle()
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		for _, m := range evt.Added {
			if _, err := fmt.Fprintln(p.out, formatLine(m)); err != nil {
				return err
			}
		}
	case event.FeedStopped:
		if evt.PendingSendCancelled {
			p.notice("pending message was not sent")
		}
		p.settle()
	}
	return nil
}

func (p *transcriptPrinter) settle() {
	select {
	case p.settled <- struct{}{}:
	default:
	}
}

func (p *transcriptPrinter) notice(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, noticeStyle.Render("* "+text))
}

func (p *transcriptPrinter) write(render func(w io.Writer)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	render(p.out)
}

func formatLine(m domain.Message) string {
	style := peerStyle
	if m.IsSelf() {
		style = selfStyle
	}
	header := style.Render(m.Author.Name)
	if label := m.Author.Label(); label != "" {
		header += " " + mutedStyle.Render("("+label+")")
	}
	return fmt.Sprintf("%s %s: %s", mutedStyle.Render(m.CreatedAt.Local().Format(timeLayout)), header, m.Content)
}

// runHeadless joins the feed, calls start, then reads one message per line from in.
// "/who", "/stats" and "/quit" are commands.
// It returns on /quit, on cancellation, or once in is exhausted and no send is pending.
func runHeadless(ctx context.Context, service services.IChatService, stats *observability.FeedStats,
	start func(), in io.Reader, out io.Writer) error {
	printer := newTranscriptPrinter(out)
	viewerID := service.Join(printer)
	defer service.Leave(viewerID)
	start()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if err != nil {
				return err
			}
			waitForSend(ctx, service, printer.settled)
			return nil
		case line := <-lines:
			quit, err := handleLine(ctx, service, stats, printer, line)
			if err != nil || quit {
				return err
			}
		}
	}
}

func handleLine(ctx context.Context, service services.IChatService, stats *observability.FeedStats, printer *transcriptPrinter, line string) (bool, error) {
	switch strings.TrimSpace(line) {
	case "/quit":
		return true, nil
	case "/who":
		printer.write(func(w io.Writer) { renderRoster(w, service.Online()) })
		return false, nil
	case "/stats":
		printer.write(func(w io.Writer) { renderStats(w, stats.GetLatest()) })
		return false, nil
	}

	service.SetDraft(line)
	accepted, err := service.Submit(ctx, line)
	if err != nil {
		return false, err
	}
	if !accepted {
		printer.notice("message ignored (empty, still loading, or a send is in flight)")
	}
	return false, nil
}

// waitForSend lets an in-flight send land before leaving.
func waitForSend(ctx context.Context, service services.IChatService, settled <-chan struct{}) {
	for service.Sending() {
		select {
		case <-ctx.Done():
			return
		case <-settled:
		}
	}
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func renderRoster(w io.Writer, online []domain.Participant) {
	table := newTable(w, []string{"Name", "Workshop", "Title"})
	for _, p := range online {
		name := p.Name
		if p.IsCurrentUser() {
			name += " (you)"
		}
		table.Append([]string{name, p.Workshop, p.Title})
	}
	table.Render()
}

func renderStats(w io.Writer, s observability.FeedStatsSnapshot) {
	table := newTable(w, []string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Transcript", strconv.Itoa(s.Transcript)},
		{"Seeded", strconv.FormatUint(s.Seeded, 10)},
		{"Injected", strconv.FormatUint(s.Injected, 10)},
		{"Sent", strconv.FormatUint(s.Sent, 10)},
		{"Skipped ticks", strconv.FormatUint(s.SkippedTicks, 10)},
		{"Dropped submits", strconv.FormatUint(s.DroppedSubmits, 10)},
		{"Memory (MB)", strconv.FormatUint(s.AllocMemMb, 10)},
	})
	table.Render()
}

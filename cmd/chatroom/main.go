package main

import (
	"chat-feed/domain"
	"chat-feed/internal"
	"chat-feed/moderation"
	"chat-feed/observability"
	"chat-feed/runtime"
	"chat-feed/runtime/workers"
	"chat-feed/services"
	"chat-feed/simulation"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the feed, starts it and hands the terminal to the chosen presentation.
func run() error {
	headless := pflag.Bool("headless", false, "Line-oriented mode: read messages from stdin, print the transcript to stdout")
	logOutput := pflag.String("log-output", "", "File receiving logs in interactive mode (discarded when empty)")
	pflag.Parse()

	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	log, closeLog, err := newLogger(config.LogLevel, *headless, *logOutput)
	if err != nil {
		return err
	}
	defer closeLog()

	// 2. Catalog & moderation
	directory, err := loadDirectory(config.DirectoryFile)
	if err != nil {
		return fmt.Errorf("directory loading failed: %w", err)
	}
	log.Info("Directory loaded", "peers", directory.PeerCount(), "content", directory.ContentCount())

	var censor simulation.Censor
	if words := moderation.ParseWords(config.CensoredWords); len(words) > 0 {
		replacement, err := internal.CharacterRune(config.CharReplacement)
		if err != nil {
			return err
		}
		moderator, err := moderation.NewModerator(words, replacement)
		if err != nil {
			return fmt.Errorf("moderation setup failed: %w", err)
		}
		log.Info(fmt.Sprintf("%d unique censored words loaded", len(words)))
		censor = moderator
	}

	// 3. Setup Supervision & Orchestration
	clk := clock.New()
	sup := workers.NewSupervisor(log, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(log, clk, sup, runtime.NewRegistry(), directory,
		simulation.NewRandom(), censor, config.FeedSettings(), config.HistoryLimit)

	stats := observability.NewFeedStats()
	orchestrator.Add(stats)
	if config.StatsInterval > 0 {
		orchestrator.Supervise(workers.NewReporterWorker(log, clk, stats, config.StatsInterval))
	}
	service := services.NewChatService(orchestrator)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start the Engine once the presentation has joined
	done := make(chan struct{})
	start := func() {
		go func() {
			defer close(done)
			if err := orchestrator.Start(ctx); err != nil {
				log.Error("Orchestrator failed", "error", err)
			}
		}()
	}

	// 6. Presentation
	if *headless {
		err = runHeadless(ctx, service, stats, start, os.Stdin, os.Stdout)
	} else {
		err = runTUI(ctx, service, start)
	}

	// 7. Final Cleanup
	orchestrator.Stop()
	<-done
	log.Info("Program stopped cleanly")
	return err
}

// newLogger keeps the interactive screen clean: logs go to a file or nowhere.
func newLogger(level string, headless bool, output string) (*slog.Logger, func(), error) {
	if headless {
		return logs.GetLoggerFromString(level), func() {}, nil
	}

	if output == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log output: %w", err)
	}
	log := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: logs.GetLevelFromString(level)}))
	return log, func() { _ = file.Close() }, nil
}

func loadDirectory(file string) (*domain.Directory, error) {
	if file == "" {
		return runtime.NewDirectoryLoader(nil).LoadAll("directory")
	}
	return runtime.NewDirectoryLoader(os.DirFS(filepath.Dir(file))).Load(filepath.Base(file))
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-bot/internal/config"
	"daily-bot/internal/content"
	"daily-bot/internal/models"
	"daily-bot/internal/poster"
	"daily-bot/internal/scheduler"
	"daily-bot/pkg/logger"
)

func main() {
	var (
		testSend = flag.Bool("test", false, "send one message immediately and exit")
		testAI   = flag.Bool("test-ai", false, "test content generation without posting")
		channel  = flag.String("channel", "", "override the target channel")
		postTime = flag.String("time", "", "override the daily post time (HH:MM)")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrEmptyBotToken) {
			fmt.Fprintln(os.Stderr, "Error: TELEGRAM_BOT_TOKEN environment variable is required")
		} else if errors.Is(err, config.ErrEmptyChannel) {
			fmt.Fprintln(os.Stderr, "Error: DEFAULT_CHANNEL_ID environment variable is required")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		}
		os.Exit(1)
	}

	if *verbose {
		cfg.App.LogLevel = "debug"
	}

	if *postTime != "" {
		if _, _, err := config.ParseTimeOfDay(*postTime); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -time value: %v\n", err)
			os.Exit(1)
		}
		cfg.Schedule.PostTime = *postTime
	}

	targetChannel := cfg.Bot.DefaultChannel
	if *channel != "" {
		if !cfg.Bot.ChannelAllowed(*channel) {
			fmt.Fprintf(os.Stderr, "Error: channel %s is not in CHANNEL_ALLOWLIST\n", *channel)
			os.Exit(1)
		}
		targetChannel = *channel
	}

	logFile, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", cfg.App.LogFile, err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger.Init(cfg.App.LogLevel, io.MultiWriter(os.Stdout, logFile))
	logger.Info("Starting daily-bot",
		logger.String("app", cfg.App.Name),
		logger.String("environment", cfg.App.Environment),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var source content.Source
	if cfg.Generator.APIKey != "" {
		source = content.NewGenerator(cfg.Generator)
		logger.Info("Content generation enabled", logger.String("model", cfg.Generator.Model))
	} else {
		logger.Warn("Generation API key not set, using fallback content only")
	}
	provider := content.NewProvider(source, content.NewFallback(nil))

	if *testAI {
		logger.Info("Testing content generation...")
		kind := models.KindJoke
		if rand.Float64() >= cfg.Schedule.JokeWeight {
			kind = models.KindTrivia
		}
		item := provider.Content(ctx, kind)
		fmt.Printf("[%s] generated=%v\n%s\n", item.Kind, item.Generated, item.Text)
		return
	}

	p, err := poster.New(cfg.Bot)
	if err != nil {
		logger.Error("Failed to create poster", logger.Err(err))
		os.Exit(1)
	}
	if err := p.Connect(); err != nil {
		logger.Error("Failed to connect to Telegram", logger.Err(err))
		os.Exit(1)
	}
	sched, err := scheduler.New(cfg.Schedule, targetChannel, provider, p)
	if err != nil {
		logger.Error("Failed to create scheduler", logger.Err(err))
		os.Exit(1)
	}

	if *testSend {
		logger.Info("Sending test message", logger.String("channel", targetChannel))
		if err := sched.PostNow(ctx, ""); err != nil {
			logger.Error("Test post failed", logger.Err(err))
			os.Exit(1)
		}
		logger.Info("Test post sent", logger.String("channel", targetChannel))
		return
	}

	go func() {
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Scheduler error", logger.Err(err))
		}
	}()

	healthMux := http.NewServeMux()
	healthMux.HandleFunc(cfg.Health.Endpoint, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: healthMux,
	}

	go func() {
		logger.Info("Health server starting", logger.Int("port", cfg.Health.Port))
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health server error", logger.Err(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down health server", logger.Err(err))
	}

	logger.Info("Bot stopped gracefully")
}

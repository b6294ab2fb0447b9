package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"banner-bot/internal/admin"
	"banner-bot/internal/coordinator"
	"banner-bot/internal/logging"
	"banner-bot/internal/notify"
	"banner-bot/internal/session"
	"banner-bot/internal/startup"
	"banner-bot/internal/stats"
	"banner-bot/internal/telegram"
	"banner-bot/internal/tempfiles"
	"banner-bot/internal/transcoder"
	"banner-bot/internal/transport"
)

const drainTimeout = 30 * time.Second

func main() {
	config, err := startup.LoadConfig()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}

	transcodeOpts := transcoder.DefaultOptions()
	transcodeOpts.Timeout = config.FFmpegTimeout
	invoker := transcoder.New(config.Workers, transcodeOpts)
	if !invoker.Available() {
		logging.Fatal("ffmpeg not found in PATH")
	}

	bot, err := telegram.New(config.BotToken)
	if err != nil {
		logging.Fatal("Failed to connect to the bot api: %v", err)
	}
	logging.Info("Authorized as @%s", bot.Username())

	aggregator := stats.New()
	notifier := notify.New(config.RedisDSN, config.RedisChannel)
	if notifier != nil {
		logging.Info("Job notifications enabled on channel %s", config.RedisChannel)
	}

	// The primary high-capacity transport is optional; without one the
	// downloader goes straight to the bot api.
	downloader := transport.NewDownloader(nil, bot)

	coord := coordinator.New(coordinator.Config{
		MaxFileSize:       config.MaxFileSize,
		DocumentThreshold: config.DocumentThreshold,
		ProgressStep:      config.ProgressStep,
		ProcessingTimeout: config.ProcessingTimeout,
	}, coordinator.Deps{
		Channel:    bot,
		Sessions:   session.NewStore(),
		Downloader: downloader,
		Runner:     invoker,
		Tracker:    tempfiles.New(config.TempDir),
		Stats:      aggregator,
		Notifier:   notifier,
	})
	bot.SetCoordinator(coord)

	srv := &http.Server{
		Addr:         ":" + config.AdminPort,
		Handler:      admin.NewRouter(aggregator, config.MetricsEnabled),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logging.Info("Admin server listening on :%s", config.AdminPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logging.Error("Admin server error: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logging.Info("Received %s, shutting down", sig)
		cancel()
	}()

	logging.Info("Bot started with %d transcode workers", config.Workers)
	bot.Run(ctx)

	// Let in-flight jobs finish, then tear everything down.
	if !coord.Drain(drainTimeout) {
		logging.Warn("Jobs still in flight after %s, forcing shutdown", drainTimeout)
	}
	invoker.Cleanup()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Warn("Admin server shutdown error: %v", err)
	}
	if err := notifier.Close(); err != nil {
		logging.Warn("Failed to close notifier: %v", err)
	}

	logging.Info("Shutdown complete")
}

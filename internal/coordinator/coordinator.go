// Package coordinator orchestrates one video-processing job per inbound
// message: session validation, download, transcode, delivery, and cleanup.
package coordinator

import (
	"context"
	"sync"
	"time"

	"banner-bot/internal/logging"
	"banner-bot/internal/notify"
	"banner-bot/internal/session"
	"banner-bot/internal/stats"
	"banner-bot/internal/tempfiles"
	"banner-bot/internal/transcoder"
	"banner-bot/internal/transport"
)

// MessageRef identifies a previously sent message for later edits or deletion.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Channel is the outbound side of the chat transport. Implementations must
// be safe for concurrent use across jobs.
type Channel interface {
	SendText(chatID int64, text string) (MessageRef, error)
	// SendMenu sends text with the bot's standard action buttons attached.
	SendMenu(chatID int64, text string) (MessageRef, error)
	EditText(ref MessageRef, text string) error
	Delete(ref MessageRef) error
	SendVideo(chatID int64, path, caption string) error
	SendDocument(chatID int64, path, caption string) error
}

// Runner executes one transcode request. Satisfied by *transcoder.Invoker.
type Runner interface {
	Run(ctx context.Context, req transcoder.Request) transcoder.Result
}

// Config carries the per-job limits read once at startup.
type Config struct {
	MaxFileSize       int64
	DocumentThreshold int64
	ProgressStep      int
	ProcessingTimeout time.Duration
	// DiagnosticsLimit caps how much ffmpeg stderr is shown to the user.
	DiagnosticsLimit int
}

// Deps are the collaborators a Coordinator drives.
type Deps struct {
	Channel    Channel
	Sessions   *session.Store
	Downloader *transport.Downloader
	Runner     Runner
	Tracker    *tempfiles.Tracker
	Stats      *stats.Aggregator
	Notifier   *notify.Publisher
}

// Coordinator ties the session store, downloader, transcoder, resource
// tracker and statistics together. One instance serves all users.
type Coordinator struct {
	cfg        Config
	channel    Channel
	sessions   *session.Store
	downloader *transport.Downloader
	runner     Runner
	tracker    *tempfiles.Tracker
	stats      *stats.Aggregator
	notifier   *notify.Publisher

	jobs sync.WaitGroup
}

// New creates a Coordinator.
func New(cfg Config, deps Deps) *Coordinator {
	if cfg.ProgressStep < 1 {
		cfg.ProgressStep = 25
	}
	if cfg.DiagnosticsLimit < 1 {
		cfg.DiagnosticsLimit = 100
	}
	return &Coordinator{
		cfg:        cfg,
		channel:    deps.Channel,
		sessions:   deps.Sessions,
		downloader: deps.Downloader,
		runner:     deps.Runner,
		tracker:    deps.Tracker,
		stats:      deps.Stats,
		notifier:   deps.Notifier,
	}
}

// Dispatch routes one inbound message. It is intended to run on its own
// goroutine per message so a slow job never stalls other users; per-user
// ordering is enforced by the session busy flag, not by the dispatcher.
func (c *Coordinator) Dispatch(ctx context.Context, msg *transport.Message) {
	c.jobs.Add(1)
	defer c.jobs.Done()
	defer func() {
		if r := recover(); r != nil {
			logging.Error("dispatch panic for user %d: %v", msg.UserID, r)
			c.reply(msg.ChatID, textUnexpectedError)
		}
	}()

	switch msg.Command {
	case "start":
		c.HandleStart(msg)
		return
	case "help":
		c.reply(msg.ChatID, c.HelpText())
		return
	case "stats":
		c.reply(msg.ChatID, c.StatsText())
		return
	}
	if msg.Command != "" {
		c.reply(msg.ChatID, textUnknownCommand)
		return
	}

	switch {
	case len(msg.Photos) > 0:
		c.HandleBanner(ctx, msg)
	case msg.Video != nil:
		c.HandleVideo(ctx, msg)
	case msg.Document != nil:
		c.handleDocument(ctx, msg)
	default:
		c.replyWrongContent(msg)
	}
}

// Drain blocks until all in-flight jobs finish or the timeout passes.
func (c *Coordinator) Drain(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		c.jobs.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// HandleStart resets the session to expect a banner, releasing any banner
// stored by a previous round.
func (c *Coordinator) HandleStart(msg *transport.Message) {
	stale := c.sessions.Begin(msg.UserID)
	c.tracker.Release(stale)

	if _, err := c.channel.SendMenu(msg.ChatID, c.welcomeText()); err != nil {
		logging.Error("failed to send welcome to chat %d: %v", msg.ChatID, err)
	}
}

// PromptBanner resets the session to expect a banner (the send_banner button)
// and returns the prompt text for the caller to display.
func (c *Coordinator) PromptBanner(userID int64) string {
	stale := c.sessions.Begin(userID)
	c.tracker.Release(stale)
	return textBannerPrompt
}

func (c *Coordinator) reply(chatID int64, text string) {
	if _, err := c.channel.SendText(chatID, text); err != nil {
		logging.Error("failed to send reply to chat %d: %v", chatID, err)
	}
}

func (c *Coordinator) edit(ref MessageRef, text string) {
	if err := c.channel.EditText(ref, text); err != nil {
		logging.Debug("failed to edit message %d in chat %d: %v", ref.MessageID, ref.ChatID, err)
	}
}

func (c *Coordinator) publish(ctx context.Context, jobID string, userID int64, event notify.Event) {
	if err := c.notifier.Publish(ctx, jobID, userID, event); err != nil {
		logging.Warn("failed to publish %s notification for job %s: %v", event, jobID, err)
	}
}

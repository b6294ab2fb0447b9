// Package telegram adapts the Bot API to the transport-neutral interfaces
// the coordinator and downloader depend on. It is the only package that
// imports the Bot API binding.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"banner-bot/internal/coordinator"
	"banner-bot/internal/logging"
	"banner-bot/internal/transport"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Bot API connection. It implements coordinator.Channel for
// outbound messages and transport.SecondaryClient for direct file downloads.
type Bot struct {
	api   *tgbotapi.BotAPI
	coord *coordinator.Coordinator
	http  *http.Client
}

// New connects to the Bot API. The coordinator is attached separately with
// SetCoordinator because it needs the Bot as its channel first.
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the bot api: %w", err)
	}
	return &Bot{api: api, http: http.DefaultClient}, nil
}

// SetCoordinator attaches the dispatcher target. Must be called before Run.
func (b *Bot) SetCoordinator(coord *coordinator.Coordinator) {
	b.coord = coord
}

// Username returns the authenticated bot account name.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Run long-polls for updates until ctx is canceled. Each update is handled
// on its own goroutine so one user's job never stalls another's events.
func (b *Bot) Run(ctx context.Context) {
	b.setupCommands()

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 60
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			switch {
			case update.Message != nil:
				msg := convertMessage(update.Message)
				go b.coord.Dispatch(ctx, msg)
			case update.CallbackQuery != nil:
				go b.handleCallback(update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) setupCommands() {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start a new video"},
		tgbotapi.BotCommand{Command: "help", Description: "Usage guide"},
		tgbotapi.BotCommand{Command: "stats", Description: "Processing statistics"},
	)
	if _, err := b.api.Request(commands); err != nil {
		logging.Warn("failed to register bot commands: %v", err)
	}
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logging.Debug("failed to answer callback query: %v", err)
	}
	if query.Message == nil {
		return
	}

	var text string
	switch query.Data {
	case "send_banner":
		text = b.coord.PromptBanner(query.From.ID)
	case "stats":
		text = b.coord.StatsText()
	case "help":
		text = b.coord.HelpText()
	case "settings":
		text = b.coord.SettingsText()
	default:
		return
	}

	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, text)
	if _, err := b.api.Request(edit); err != nil {
		logging.Debug("failed to edit callback message: %v", err)
	}
}

// convertMessage maps a Bot API message onto the transport-neutral model.
func convertMessage(m *tgbotapi.Message) *transport.Message {
	msg := &transport.Message{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Text:      m.Text,
	}
	if m.From != nil {
		msg.UserID = m.From.ID
	}
	if m.IsCommand() {
		msg.Command = m.Command()
	}
	if m.Video != nil {
		msg.Video = &transport.FileMeta{
			ID:       m.Video.FileID,
			Size:     int64(m.Video.FileSize),
			MimeType: m.Video.MimeType,
			FileName: m.Video.FileName,
		}
	}
	if m.Document != nil {
		msg.Document = &transport.FileMeta{
			ID:       m.Document.FileID,
			Size:     int64(m.Document.FileSize),
			MimeType: m.Document.MimeType,
			FileName: m.Document.FileName,
		}
	}
	for _, photo := range m.Photo {
		msg.Photos = append(msg.Photos, transport.FileMeta{
			ID:   photo.FileID,
			Size: int64(photo.FileSize),
		})
	}
	return msg
}

// DownloadFile implements transport.SecondaryClient via the Bot API's
// direct file endpoint.
func (b *Bot) DownloadFile(ctx context.Context, fileID string, dest string) error {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return fmt.Errorf("failed to resolve file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch file %s: %w", fileID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("file endpoint returned %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return out.Sync()
}

package telegram

import (
	"banner-bot/internal/coordinator"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// The outbound half of the adapter: coordinator.Channel.

func (b *Bot) SendText(chatID int64, text string) (coordinator.MessageRef, error) {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return coordinator.MessageRef{}, err
	}
	return coordinator.MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// SendMenu sends text with the standard action buttons attached.
func (b *Bot) SendMenu(chatID int64, text string) (coordinator.MessageRef, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Send banner", "send_banner"),
			tgbotapi.NewInlineKeyboardButtonData("Statistics", "stats"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Help", "help"),
			tgbotapi.NewInlineKeyboardButtonData("Settings", "settings"),
		),
	)
	sent, err := b.api.Send(msg)
	if err != nil {
		return coordinator.MessageRef{}, err
	}
	return coordinator.MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
}

func (b *Bot) EditText(ref coordinator.MessageRef, text string) error {
	_, err := b.api.Request(tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, text))
	return err
}

func (b *Bot) Delete(ref coordinator.MessageRef) error {
	_, err := b.api.Request(tgbotapi.NewDeleteMessage(ref.ChatID, ref.MessageID))
	return err
}

func (b *Bot) SendVideo(chatID int64, path, caption string) error {
	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
	video.Caption = caption
	video.SupportsStreaming = true
	_, err := b.api.Send(video)
	return err
}

func (b *Bot) SendDocument(chatID int64, path, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	_, err := b.api.Send(doc)
	return err
}

package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender delivers notifications via the Telegram Bot API. It is the
// primary channel: final-window boards are additionally pinned in the chat so
// they stay on top until the next slate.
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSender authenticates against the Bot API with the given token.
func NewTelegramSender(token string, chatID int64) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: authenticate bot: %w", err)
	}
	return &TelegramSender{bot: bot, chatID: chatID}, nil
}

// Send posts a message to the configured chat. The title is rendered in bold
// Markdown above the body.
func (t *TelegramSender) Send(ctx context.Context, title, message string) error {
	_, err := t.send(ctx, title, message)
	return err
}

// SendPinned posts a message and pins it in the chat, replacing whatever was
// pinned before. Used for the final pre-kickoff board.
func (t *TelegramSender) SendPinned(ctx context.Context, title, message string) error {
	sent, err := t.send(ctx, title, message)
	if err != nil {
		return err
	}

	pin := tgbotapi.PinChatMessageConfig{
		ChatID:              t.chatID,
		MessageID:           sent.MessageID,
		DisableNotification: true,
	}
	if _, err := t.bot.Request(pin); err != nil {
		return fmt.Errorf("telegram: pin message: %w", err)
	}
	return nil
}

func (t *TelegramSender) send(ctx context.Context, title, message string) (tgbotapi.Message, error) {
	if err := ctx.Err(); err != nil {
		return tgbotapi.Message{}, err
	}

	msg := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("*%s*\n%s", title, message))
	msg.ParseMode = tgbotapi.ModeMarkdown

	sent, err := t.bot.Send(msg)
	if err != nil {
		return tgbotapi.Message{}, fmt.Errorf("telegram: send message: %w", err)
	}
	return sent, nil
}

// Name returns the sender identifier.
func (t *TelegramSender) Name() string {
	return "telegram"
}

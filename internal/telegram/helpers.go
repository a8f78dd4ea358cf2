package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"

	"relay_bot/internal/logger"
)

// sendMessage 发送消息（统一错误处理，使用 HTML 格式）
func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string) {
	b.send(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: botModels.ParseModeHTML,
	})
}

// sendPlainMessage 发送纯文本消息，内容可能包含平台原始错误描述
func (b *Bot) sendPlainMessage(ctx context.Context, chatID int64, text string) {
	b.send(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

func (b *Bot) send(ctx context.Context, params *bot.SendMessageParams) {
	if _, err := b.api.SendMessage(ctx, params); err != nil {
		logger.L().Errorf("Failed to send message to chat %v: %v", params.ChatID, err)
	}
}

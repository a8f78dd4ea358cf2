package telegram

import (
	"context"

	"relay_bot/internal/logger"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// RequireAdmin 中间件：仅允许授权操作员执行
// 拒绝时只回复固定提示，不处理也不记录消息内容
func (b *Bot) RequireAdmin(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
		if update.Message == nil || update.Message.From == nil {
			return
		}

		if !b.guard.Authorize(update.Message.From.ID) {
			logger.L().Warnf("Unauthorized user %d rejected", update.Message.From.ID)
			b.sendPlainMessage(ctx, update.Message.Chat.ID, permissionDeniedText)
			return
		}

		next(ctx, botInstance, update)
	}
}

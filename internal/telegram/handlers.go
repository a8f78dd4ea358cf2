package telegram

import (
	"context"
	"fmt"
	"html"
	"strings"

	"relay_bot/internal/logger"
	"relay_bot/internal/telegram/models"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

const (
	permissionDeniedText = "⛔ No tienes permiso para usar este bot."
	internalErrorText    = "❌ Error interno, inténtalo de nuevo."

	helpText = "🤖 <b>Bot Multi-Canal Activado</b>\n\n" +
		"📤 Envíame cualquier mensaje y lo reenviaré a todos tus canales.\n\n" +
		"<b>Tipos de contenido soportados:</b>\n" +
		"• Texto\n" +
		"• Imágenes\n" +
		"• Videos\n" +
		"• Documentos\n" +
		"• Audio\n" +
		"• Notas de voz\n\n" +
		"<b>Comandos:</b>\n" +
		"/start - Ver este mensaje\n" +
		"/canales - Ver canales configurados"
)

// registerHandlers 注册所有命令处理器（异步执行）
func (b *Bot) registerHandlers() {
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact,
		b.asyncHandler(b.RequireAdmin(b.handleStart)))
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/canales", bot.MatchTypeExact,
		b.asyncHandler(b.RequireAdmin(b.handleChannels)))

	logger.L().Debug("All handlers registered with async execution")
}

// handleStart 处理 /start 命令
func (b *Bot) handleStart(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil {
		return
	}

	b.sendMessage(ctx, update.Message.Chat.ID, helpText)
}

// handleChannels 处理 /canales 命令（列出目标频道）
func (b *Bot) handleChannels(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil {
		return
	}

	b.sendMessage(ctx, update.Message.Chat.ID, buildChannelListText(b.forwarder.Destinations()))
}

// handleForward 处理非命令消息：转发到所有频道并回复报告
func (b *Bot) handleForward(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	// 未注册的命令不转发
	if isCommand(msg) {
		logger.L().Debugf("Ignoring unknown command from user %d", msg.From.ID)
		return
	}

	content := models.ContentFromMessage(msg)
	report := b.forwarder.Forward(ctx, content)

	b.sendPlainMessage(context.WithoutCancel(ctx), msg.Chat.ID, report.Text())
}

func buildChannelListText(channels []string) string {
	var text strings.Builder
	text.WriteString("📺 <b>Canales configurados:</b>\n\n")
	for i, ch := range channels {
		text.WriteString(fmt.Sprintf("%d. %s\n", i+1, html.EscapeString(ch)))
	}
	return text.String()
}

// isCommand 消息是否以 bot 命令开头
func isCommand(msg *botModels.Message) bool {
	for _, entity := range msg.Entities {
		if entity.Type == botModels.MessageEntityTypeBotCommand && entity.Offset == 0 {
			return true
		}
	}
	return false
}

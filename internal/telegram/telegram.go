package telegram

import (
	"context"
	"fmt"
	"time"

	"relay_bot/internal/config"
	"relay_bot/internal/logger"
	"relay_bot/internal/telegram/forward"
	"relay_bot/internal/telegram/service"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// Config Telegram Bot 配置
type Config struct {
	Token              string        // Bot Token
	AdminID            int64         // 唯一授权操作员 ID
	Channels           []string      // 目标频道
	Debug              bool          // 是否开启调试模式
	ForwardConcurrency int           // 并发转发数
	SendTimeout        time.Duration // 单次发送超时
	WorkerPoolSize     int           // Handler 工作池大小
	WorkerQueueSize    int           // Handler 任务队列大小
}

// Bot Telegram Bot 服务
type Bot struct {
	bot        *bot.Bot
	api        botAPI
	guard      service.AccessGuard
	forwarder  *forward.Service
	workerPool *WorkerPool
}

// New 创建 Telegram Bot 实例
func New(cfg Config) (*Bot, error) {
	// 验证配置
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token cannot be empty")
	}
	if len(cfg.Channels) == 0 {
		return nil, fmt.Errorf("at least one channel is required")
	}

	telegramBot := &Bot{
		guard: service.NewAccessGuard(cfg.AdminID),
	}

	// 非命令消息全部进入转发流程
	opts := []bot.Option{
		bot.WithDefaultHandler(telegramBot.asyncHandler(telegramBot.RequireAdmin(telegramBot.handleForward))),
	}
	if cfg.Debug {
		opts = append(opts, bot.WithDebug())
	}

	b, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	telegramBot.bot = b
	telegramBot.api = b
	telegramBot.forwarder = forward.NewService(newBotSender(b), cfg.Channels,
		forward.WithConcurrency(cfg.ForwardConcurrency),
		forward.WithSendTimeout(cfg.SendTimeout),
	)
	telegramBot.workerPool = NewWorkerPool(cfg.WorkerPoolSize, cfg.WorkerQueueSize, telegramBot.replyInternalError)

	// 注册 handlers
	telegramBot.registerHandlers()

	logger.L().Infof("Telegram bot initialized successfully: channels=%d", len(cfg.Channels))
	return telegramBot, nil
}

// InitFromConfig 从应用配置初始化 Telegram Bot
func InitFromConfig(cfg *config.Config) (*Bot, error) {
	telegramCfg := Config{
		Token:              cfg.TelegramToken,
		AdminID:            cfg.AdminID,
		Channels:           cfg.Channels,
		Debug:              cfg.Debug,
		ForwardConcurrency: cfg.ForwardConcurrency,
		SendTimeout:        cfg.SendTimeout,
		WorkerPoolSize:     cfg.WorkerPoolSize,
		WorkerQueueSize:    cfg.WorkerQueueSize,
	}
	return New(telegramCfg)
}

// Start 启动 Bot（阻塞式，ctx 取消后返回）
func (b *Bot) Start(ctx context.Context) error {
	b.publishCommands(ctx)

	logger.L().Info("Starting Telegram bot...")
	b.bot.Start(ctx)
	logger.L().Info("Telegram bot stopped")
	return nil
}

// Stop 停止 Bot，等待进行中的转发完成
func (b *Bot) Stop(ctx context.Context) error {
	logger.L().Info("Stopping Telegram bot...")
	if b.workerPool != nil {
		b.workerPool.Shutdown()
	}
	return nil
}

// publishCommands 在管理员私聊中设置命令菜单
func (b *Bot) publishCommands(ctx context.Context) {
	_, err := b.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: []botModels.BotCommand{
			{Command: "start", Description: "Ver ayuda"},
			{Command: "canales", Description: "Ver canales configurados"},
		},
		Scope: &botModels.BotCommandScopeChat{ChatID: b.guard.AdminID()},
	})
	if err != nil {
		logger.L().Warnf("Failed to publish bot commands: %v", err)
	}
}

// asyncHandler 将 handler 投递到工作池执行
func (b *Bot) asyncHandler(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
		b.workerPool.Submit(ctx, HandlerTask{
			Ctx:         ctx,
			BotInstance: botInstance,
			Update:      update,
			Handler:     next,
		})
	}
}

// replyInternalError handler panic 后通知用户
func (b *Bot) replyInternalError(task HandlerTask, _ any) {
	if task.Update == nil || task.Update.Message == nil {
		return
	}
	b.sendPlainMessage(context.WithoutCancel(task.Ctx), task.Update.Message.Chat.ID, internalErrorText)
}

package app

import (
	"context"
	"fmt"

	"relay_bot/internal/config"
	"relay_bot/internal/logger"
	"relay_bot/internal/telegram"
)

// App 应用服务容器
// 负责管理所有服务的生命周期（初始化、运行、关闭）
type App struct {
	TelegramBot *telegram.Bot
}

// New 初始化应用及其所有服务
// 任何服务初始化失败都会返回错误
func New(cfg *config.Config) (*App, error) {
	app := &App{}

	telegramBot, err := telegram.InitFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init Telegram bot failed: %w", err)
	}
	app.TelegramBot = telegramBot
	logger.L().Infof("Telegram bot ready: admin_id=%d, channels=%d", cfg.AdminID, len(cfg.Channels))

	return app, nil
}

// Run 运行应用，阻塞直到 ctx 取消
func (a *App) Run(ctx context.Context) error {
	if a.TelegramBot == nil {
		return fmt.Errorf("telegram bot is not initialized")
	}
	return a.TelegramBot.Start(ctx)
}

// Close 优雅关闭所有服务
// 应该在应用退出时调用，确保进行中的转发完成
func (a *App) Close(ctx context.Context) error {
	if a.TelegramBot != nil {
		if err := a.TelegramBot.Stop(ctx); err != nil {
			return fmt.Errorf("close Telegram bot failed: %w", err)
		}
	}
	return nil
}

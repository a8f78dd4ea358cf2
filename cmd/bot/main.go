package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relay_bot/internal/app"
	"relay_bot/internal/config"
	"relay_bot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger 尚未按配置初始化，使用默认设置输出
		logger.Init("", "")
		logger.L().Fatalf("配置加载失败: %v", err)
	}

	// 初始化logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg)
	if err != nil {
		logger.L().Fatalf("应用初始化失败: %v", err)
	}

	logger.L().Infof("🚀 Iniciando bot... canales configurados: %d", len(cfg.Channels))

	if err := application.Run(ctx); err != nil {
		logger.L().Errorf("Bot 运行失败: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Close(shutdownCtx); err != nil {
		logger.L().Errorf("应用关闭失败: %v", err)
	}
}

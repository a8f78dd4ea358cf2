package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigMissing 必需配置缺失或无效，进程不得启动
var ErrConfigMissing = errors.New("required configuration missing")

// Config 应用程序配置
// Load 之后视为只读，按指针传给各组件
type Config struct {
	TelegramToken      string        `yaml:"telegram_token"`      // Telegram Bot API Token
	AdminID            int64         `yaml:"admin_id"`            // 唯一授权操作员 ID
	Channels           []string      `yaml:"channels"`            // 目标频道列表（按顺序转发）
	Debug              bool          `yaml:"debug"`               // 是否开启 bot 调试模式
	LogLevel           string        `yaml:"log_level"`           // 日志级别
	LogFormat          string        `yaml:"log_format"`          // text / json
	ForwardConcurrency int           `yaml:"forward_concurrency"` // 并发转发数（1 = 顺序）
	SendTimeout        time.Duration `yaml:"-"`                   // 单次发送超时（0 = 不限制）
	SendTimeoutSeconds int           `yaml:"send_timeout_seconds"`
	WorkerPoolSize     int           `yaml:"worker_pool_size"`  // Handler 工作池大小
	WorkerQueueSize    int           `yaml:"worker_queue_size"` // Handler 任务队列大小
}

// Load 从环境变量加载配置
// 若设置 CONFIG_FILE，则先读取 YAML 文件，环境变量覆盖文件中的值
func Load() (*Config, error) {
	cfg := &Config{}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile 读取 YAML 配置文件
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read CONFIG_FILE %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse CONFIG_FILE %s: %w", path, err)
	}
	cfg.Channels = normalizeChannels(cfg.Channels)
	if cfg.SendTimeoutSeconds > 0 {
		cfg.SendTimeout = time.Duration(cfg.SendTimeoutSeconds) * time.Second
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if token := firstEnv("TELEGRAM_TOKEN", "BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if adminStr := strings.TrimSpace(os.Getenv("ADMIN_ID")); adminStr != "" {
		id, err := strconv.ParseInt(adminStr, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: invalid ADMIN_ID %q: %v", ErrConfigMissing, adminStr, err)
		}
		cfg.AdminID = id
	}

	if channelsStr := firstEnv("CHANNELS", "CANALES"); channelsStr != "" {
		cfg.Channels = parseChannels(channelsStr)
	}

	if debug := strings.TrimSpace(os.Getenv("BOT_DEBUG")); debug != "" {
		value, err := strconv.ParseBool(debug)
		if err != nil {
			return fmt.Errorf("failed to parse BOT_DEBUG: %w", err)
		}
		cfg.Debug = value
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}
	if format := strings.TrimSpace(os.Getenv("LOG_FORMAT")); format != "" {
		cfg.LogFormat = format
	}

	if err := envInt("FORWARD_CONCURRENCY", 1, &cfg.ForwardConcurrency); err != nil {
		return err
	}
	if err := envInt("WORKER_POOL_SIZE", 1, &cfg.WorkerPoolSize); err != nil {
		return err
	}
	if err := envInt("WORKER_QUEUE_SIZE", 1, &cfg.WorkerQueueSize); err != nil {
		return err
	}

	if timeoutStr := strings.TrimSpace(os.Getenv("SEND_TIMEOUT_SECONDS")); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds < 0 {
			return fmt.Errorf("invalid SEND_TIMEOUT_SECONDS: %s", timeoutStr)
		}
		cfg.SendTimeoutSeconds = seconds
		cfg.SendTimeout = time.Duration(seconds) * time.Second
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.ForwardConcurrency <= 0 {
		cfg.ForwardConcurrency = 1
	}
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = 4
	}
	if cfg.WorkerQueueSize <= 0 {
		cfg.WorkerQueueSize = 64
	}
}

// Validate 校验必需配置
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("%w: TELEGRAM_TOKEN (or BOT_TOKEN) is empty", ErrConfigMissing)
	}
	if c.AdminID == 0 {
		return fmt.Errorf("%w: ADMIN_ID is empty", ErrConfigMissing)
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("%w: CHANNELS (or CANALES) has no channel", ErrConfigMissing)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q, want text or json", c.LogFormat)
	}
	return nil
}

// parseChannels 解析逗号分隔的频道列表
// 支持格式: "@canal1" 或 "@canal1,-1001234567890"
func parseChannels(s string) []string {
	return normalizeChannels(strings.Split(s, ","))
}

func normalizeChannels(in []string) []string {
	channels := make([]string, 0, len(in))
	for _, ch := range in {
		ch = strings.TrimSpace(ch)
		if ch == "" {
			continue
		}
		channels = append(channels, ch)
	}
	return channels
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func envInt(key string, minValue int, dst *int) error {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	if v < minValue {
		return fmt.Errorf("%s must be >= %d, got %d", key, minValue, v)
	}
	*dst = v
	return nil
}

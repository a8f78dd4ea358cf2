package forward

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"relay_bot/internal/logger"
	"relay_bot/internal/telegram/models"
)

// Sender 消息平台发送接口
// caption 为空表示不带说明文字
type Sender interface {
	SendText(ctx context.Context, destination string, text string) error
	SendPhoto(ctx context.Context, destination string, fileID string, caption string) error
	SendVideo(ctx context.Context, destination string, fileID string, caption string) error
	SendDocument(ctx context.Context, destination string, fileID string, caption string) error
	SendAudio(ctx context.Context, destination string, fileID string, caption string) error
	SendVoice(ctx context.Context, destination string, fileID string, caption string) error
}

// Option 转发服务可选项
type Option func(*Service)

// WithConcurrency 设置同时发送的频道数量（<=1 为顺序发送）
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n < 1 {
			n = 1
		}
		s.concurrency = n
	}
}

// WithSendTimeout 设置单次发送超时（0 表示由客户端决定）
func WithSendTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d < 0 {
			d = 0
		}
		s.sendTimeout = d
	}
}

// Service 转发服务实现
type Service struct {
	sender       Sender
	destinations []string
	concurrency  int
	sendTimeout  time.Duration
}

// NewService 创建转发服务实例
// destinations 在进程生命周期内不变
func NewService(sender Sender, destinations []string, opts ...Option) *Service {
	s := &Service{
		sender:       sender,
		destinations: append([]string(nil), destinations...),
		concurrency:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Destinations 返回目标频道列表副本
func (s *Service) Destinations() []string {
	return append([]string(nil), s.destinations...)
}

// Forward 将内容发送到所有目标频道并汇总结果
// 每个频道恰好尝试一次，单个频道失败不影响其余频道；
// 开始后不响应 ctx 取消，全部尝试结束后才生成报告
func (s *Service) Forward(ctx context.Context, content models.Content) *Report {
	ctx = context.WithoutCancel(ctx)
	startTime := time.Now()
	taskID := uuid.New().String()

	if !content.IsSupported() {
		logger.L().Debugf("Unsupported content skipped: task_id=%s, destinations=%d", taskID, len(s.destinations))
	} else {
		logger.L().Infof("Starting forward task: task_id=%s, kind=%s, destinations=%d",
			taskID, content.Kind, len(s.destinations))
	}

	outcomes := make([]Outcome, len(s.destinations))

	if s.concurrency <= 1 || len(s.destinations) <= 1 {
		for i, dest := range s.destinations {
			outcomes[i] = s.attempt(ctx, dest, content)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(s.concurrency)
		for i, dest := range s.destinations {
			i, dest := i, dest
			g.Go(func() error {
				outcomes[i] = s.attempt(ctx, dest, content)
				return nil
			})
		}
		// attempt 永不返回错误，Wait 只用于等待全部完成
		_ = g.Wait()
	}

	report := newReport(taskID, content.Kind, outcomes)

	if content.IsSupported() {
		logger.L().Infof("Forward task completed: task_id=%s, success=%d, failed=%d, duration=%v",
			taskID, report.Successes, report.FailedCount(), time.Since(startTime))
	}

	return report
}

// attempt 发送到单个频道，错误和 panic 都转换为失败结果
func (s *Service) attempt(ctx context.Context, destination string, content models.Content) (outcome Outcome) {
	outcome.Destination = destination

	defer func() {
		if r := recover(); r != nil {
			outcome.Err = fmt.Errorf("panic: %v", r)
		}
		if !content.IsSupported() {
			return
		}
		if outcome.Err != nil {
			logger.L().Errorf("Failed to forward to %s: %v", destination, outcome.Err)
		} else {
			logger.L().Infof("Forwarded to %s", destination)
		}
	}()

	if s.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()
	}

	outcome.Err = s.send(ctx, destination, content)
	return outcome
}

// send 按内容类型调用对应的发送接口
// 不支持的类型不发送任何消息，也不视为失败
func (s *Service) send(ctx context.Context, destination string, content models.Content) error {
	switch content.Kind {
	case models.ContentText:
		return s.sender.SendText(ctx, destination, content.Text)
	case models.ContentPhoto:
		return s.sender.SendPhoto(ctx, destination, content.FileID, content.Caption)
	case models.ContentVideo:
		return s.sender.SendVideo(ctx, destination, content.FileID, content.Caption)
	case models.ContentDocument:
		return s.sender.SendDocument(ctx, destination, content.FileID, content.Caption)
	case models.ContentAudio:
		return s.sender.SendAudio(ctx, destination, content.FileID, content.Caption)
	case models.ContentVoice:
		return s.sender.SendVoice(ctx, destination, content.FileID, content.Caption)
	default:
		return nil
	}
}

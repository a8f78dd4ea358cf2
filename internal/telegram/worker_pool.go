package telegram

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"

	"relay_bot/internal/logger"
)

// HandlerTask Handler 任务
type HandlerTask struct {
	Ctx         context.Context
	BotInstance *bot.Bot
	Update      *botModels.Update
	Handler     bot.HandlerFunc
}

// WorkerPoolStats 工作池运行统计
type WorkerPoolStats struct {
	Workers   int
	Queued    int
	Completed int64
	Panics    int64
}

// WorkerPool Handler 工作池
type WorkerPool struct {
	taskQueue chan HandlerTask
	wg        sync.WaitGroup
	workers   int
	closeOnce sync.Once

	completed atomic.Int64
	panics    atomic.Int64

	// onPanic handler panic 后的补救动作（通常是回复用户）
	onPanic func(task HandlerTask, recovered any)
}

// NewWorkerPool 创建工作池
// workers: worker 协程数量
// queueSize: 任务队列大小
func NewWorkerPool(workers int, queueSize int, onPanic func(HandlerTask, any)) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	pool := &WorkerPool{
		taskQueue: make(chan HandlerTask, queueSize),
		workers:   workers,
		onPanic:   onPanic,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	logger.L().Infof("Worker pool started with %d workers, queue size %d", workers, queueSize)
	return pool
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	logger.L().Debugf("Worker %d started", id)

	for task := range p.taskQueue {
		p.run(id, task)
	}

	logger.L().Debugf("Worker %d stopped", id)
}

// run 执行 handler，带 panic recovery
func (p *WorkerPool) run(id int, task HandlerTask) {
	defer p.completed.Add(1)
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			logger.L().Errorf("Worker %d: handler panic recovered: %v", id, r)
			if p.onPanic != nil {
				p.onPanic(task, r)
			}
		}
	}()

	task.Handler(task.Ctx, task.BotInstance, task.Update)
}

// Submit 提交任务到工作池
// 队列已满时阻塞，直到有空位或 ctx 取消；返回任务是否入队
func (p *WorkerPool) Submit(ctx context.Context, task HandlerTask) bool {
	select {
	case p.taskQueue <- task:
		return true
	case <-ctx.Done():
		logger.L().Warnf("Worker pool submit canceled: %v", ctx.Err())
		return false
	}
}

// Stats 返回运行统计
func (p *WorkerPool) Stats() WorkerPoolStats {
	return WorkerPoolStats{
		Workers:   p.workers,
		Queued:    len(p.taskQueue),
		Completed: p.completed.Load(),
		Panics:    p.panics.Load(),
	}
}

// Shutdown 优雅关闭工作池
// 等待队列中和正在执行的任务完成，重复调用无影响
func (p *WorkerPool) Shutdown() {
	p.closeOnce.Do(func() {
		logger.L().Info("Shutting down worker pool...")
		close(p.taskQueue)
		p.wg.Wait()
		logger.L().Info("Worker pool shut down successfully")
	})
}

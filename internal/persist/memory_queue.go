package persist

import (
	"context"
	"sync"

	xerrors "SonicChat/internal/errors"
	"SonicChat/pkg/logger"
)

// defaultQueueCapacity 是内存队列的默认容量。
const defaultQueueCapacity = 256

// MemoryQueue 是基于 channel 的进程内队列，适用于测试与单机运行。
type MemoryQueue struct {
	ch        chan Request
	closeOnce sync.Once
}

// NewMemoryQueue 创建指定容量的内存队列。容量非正时使用默认值。
func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	return &MemoryQueue{ch: make(chan Request, capacity)}
}

// Publish 将请求投入队列，队列已满时阻塞直到上下文取消。
func (q *MemoryQueue) Publish(ctx context.Context, req Request) error {
	select {
	case q.ch <- req:
		return nil
	case <-ctx.Done():
		return xerrors.Wrap(xerrors.CodeQueueFailure, ctx.Err(), "内存队列投递被取消")
	}
}

// Consume 启动 workerCount 个消费协程，阻塞直到上下文取消。
func (q *MemoryQueue) Consume(ctx context.Context, workerCount int, handler Handler) error {
	if workerCount <= 0 {
		workerCount = 1
	}
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case req, ok := <-q.ch:
					if !ok {
						return
					}
					if err := handler(ctx, req); err != nil {
						logger.L().Warn("处理落库请求失败", "error", err)
					}
				}
			}
		}()
	}
	wg.Wait()
	return nil
}

// Close 关闭底层 channel。
func (q *MemoryQueue) Close() error {
	q.closeOnce.Do(func() { close(q.ch) })
	return nil
}

var _ Queue = (*MemoryQueue)(nil)

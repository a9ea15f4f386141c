package persist

import (
	"context"

	xerrors "SonicChat/internal/errors"
	"SonicChat/internal/observability/alerting"
	"SonicChat/pkg/logger"
)

// Processor 消费落库队列并把实体写入存储。
type Processor struct {
	queue    Consumer
	store    Store
	workers  int
	notifier alerting.Notifier
}

// ProcessorOption 配置 Processor 的可选行为。
type ProcessorOption func(*Processor)

// WithNotifier 设置落库失败时使用的告警通知器。
func WithNotifier(n alerting.Notifier) ProcessorOption {
	return func(p *Processor) { p.notifier = n }
}

// NewProcessor 创建落库处理器。workers 非正时按 1 处理。
func NewProcessor(queue Consumer, store Store, workers int, opts ...ProcessorOption) (*Processor, error) {
	if queue == nil {
		return nil, xerrors.New(xerrors.CodeInvalidArgument, "队列不能为空")
	}
	if store == nil {
		return nil, xerrors.New(xerrors.CodeInvalidArgument, "存储不能为空")
	}
	if workers <= 0 {
		workers = 1
	}
	p := &Processor{queue: queue, store: store, workers: workers}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run 阻塞消费队列，直到上下文取消。
func (p *Processor) Run(ctx context.Context) error {
	logger.L().Info("实体落库处理器启动", "workers", p.workers)
	return p.queue.Consume(ctx, p.workers, p.handle)
}

func (p *Processor) handle(ctx context.Context, req Request) error {
	var err error
	switch {
	case req.Token != nil:
		err = p.store.SaveToken(ctx, req.SessionID, req.Token)
	case req.NFT != nil:
		err = p.store.SaveNFT(ctx, req.SessionID, req.NFT)
	default:
		logger.L().Warn("丢弃空的落库请求", "session_id", req.SessionID)
		return nil
	}
	if err != nil {
		wrapped := xerrors.Wrap(xerrors.CodePersistFailure, err, "实体落库失败",
			xerrors.WithMetadata("session_id", req.SessionID))
		p.alert(ctx, wrapped)
		return wrapped
	}
	return nil
}

func (p *Processor) alert(ctx context.Context, err error) {
	if p.notifier == nil {
		return
	}
	event := alerting.FromError("persist.processor", "entity persistence failed", err)
	if notifyErr := p.notifier.Notify(ctx, event); notifyErr != nil {
		logger.L().Warn("告警发送失败", "error", notifyErr)
	}
}

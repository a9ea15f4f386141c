package alerting

import (
	"context"
	"time"

	xerrors "SonicChat/internal/errors"
	"SonicChat/pkg/logger"
)

// Event 描述一次需要通知运维的异常事件。
type Event struct {
	Source   string            `json:"source"`
	Severity xerrors.Severity  `json:"severity"`
	Summary  string            `json:"summary"`
	Error    string            `json:"error,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	At       time.Time         `json:"at"`
}

// Notifier 将告警事件投递到某个通知渠道。
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// FromError 根据统一错误构造告警事件。
func FromError(source, summary string, err error) Event {
	event := Event{
		Source:   source,
		Severity: xerrors.SeverityOf(err),
		Summary:  summary,
		At:       time.Now(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	if e, ok := xerrors.From(err); ok {
		event.Metadata = e.Metadata()
	}
	return event
}

// LogNotifier 把告警写入结构化日志，是默认的通知渠道。
type LogNotifier struct{}

// Notify 实现 Notifier 接口。
func (LogNotifier) Notify(_ context.Context, event Event) error {
	logger.L().Error("alert raised",
		"source", event.Source,
		"severity", string(event.Severity),
		"summary", event.Summary,
		"error", event.Error)
	return nil
}

// Fanout 将事件广播到多个通知渠道，单个渠道失败不影响其余渠道。
type Fanout struct {
	notifiers []Notifier
}

// NewFanout 创建一个广播通知器。
func NewFanout(notifiers ...Notifier) *Fanout {
	return &Fanout{notifiers: notifiers}
}

// Notify 实现 Notifier 接口。
func (f *Fanout) Notify(ctx context.Context, event Event) error {
	var lastErr error
	for _, n := range f.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			logger.L().Warn("alert delivery failed", "error", err)
			lastErr = err
		}
	}
	return lastErr
}

var (
	_ Notifier = LogNotifier{}
	_ Notifier = (*Fanout)(nil)
)

package llm

import (
	"context"

	"SonicChat/internal/stream"
)

// HistoryEntry 描述会话中的一条历史消息，为大模型提供上下文。
type HistoryEntry struct {
	Role    string
	Content string
}

// Request 描述发送给对话智能体的一次请求。
type Request struct {
	SessionID string
	Message   string
	History   []HistoryEntry
}

// Client 定义了调用对话智能体的统一接口。返回的片段序列是
// 有限且有序的，由聚合器一次性消费。
type Client interface {
	Stream(ctx context.Context, req Request) ([]stream.Chunk, error)
}

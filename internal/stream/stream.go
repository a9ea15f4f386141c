package stream

import (
	"log/slog"
	"strings"

	"SonicChat/pkg/logger"
)

// ChunkKind 区分智能体输出流中的两类片段。
type ChunkKind string

const (
	// KindAgent 表示携带可见文本增量的片段。
	KindAgent ChunkKind = "agent"
	// KindTool 表示一次工具调用的元数据，不进入可见回复。
	KindTool ChunkKind = "tool"
)

// Chunk 是智能体输出流中的一个片段。流是有限且可重放的，
// 聚合器同步消费完整序列后才返回。
type Chunk struct {
	Kind    ChunkKind
	Content string
	// Tool 仅在 KindTool 时有意义，记录被调用的工具名。
	Tool string
}

// AgentChunk 构造一个文本片段。
func AgentChunk(content string) Chunk {
	return Chunk{Kind: KindAgent, Content: content}
}

// ToolChunk 构造一个工具调用片段。
func ToolChunk(tool, content string) Chunk {
	return Chunk{Kind: KindTool, Tool: tool, Content: content}
}

// Aggregate 将片段序列规约成最终回复文本。文本片段按行拼接，
// 工具片段只记录日志。没有任何文本片段时返回空串，调用方应
// 将空串视为"无内容"而不是错误。
func Aggregate(chunks []Chunk) string {
	var builder strings.Builder
	for _, chunk := range chunks {
		switch chunk.Kind {
		case KindAgent:
			builder.WriteString(chunk.Content)
			builder.WriteString("\n")
		case KindTool:
			logger.L().Debug("智能体调用工具",
				slog.String("tool", chunk.Tool),
				slog.String("content", chunk.Content),
			)
		}
	}
	return builder.String()
}

package chat

import "context"

// Store 是会话消息的追加式存储。
// 同一会话内消息按追加顺序保存，时间戳单调不减。
type Store interface {
	// Append 将消息追加到其会话的末尾。
	Append(ctx context.Context, msg *Message) error
	// History 按追加顺序返回会话的全部消息。
	History(ctx context.Context, sessionID string) ([]Message, error)
	// Close 释放底层资源。
	Close() error
}

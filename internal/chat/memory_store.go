package chat

import (
	"context"
	"sync"

	xerrors "SonicChat/internal/errors"
)

// MemoryStore 是基于内存的消息存储，适用于测试与单机运行。
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Message
}

// NewMemoryStore 创建一个空的内存消息存储。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]Message)}
}

// Append 将消息追加到会话末尾。若时间戳早于上一条消息则抬升为上一条的时间戳。
func (s *MemoryStore) Append(ctx context.Context, msg *Message) error {
	if msg == nil {
		return xerrors.New(xerrors.CodeInvalidArgument, "message is nil")
	}
	if msg.SessionID == "" {
		return xerrors.New(xerrors.CodeInvalidArgument, "session id is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.sessions[msg.SessionID]
	if n := len(list); n > 0 && msg.CreatedAt < list[n-1].CreatedAt {
		msg.CreatedAt = list[n-1].CreatedAt
	}
	s.sessions[msg.SessionID] = append(list, *msg)
	return nil
}

// History 按追加顺序返回会话的全部消息副本。
func (s *MemoryStore) History(ctx context.Context, sessionID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.sessions[sessionID]
	out := make([]Message, len(list))
	copy(out, list)
	return out, nil
}

// Close 实现 Store 接口，对内存存储是空操作。
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)

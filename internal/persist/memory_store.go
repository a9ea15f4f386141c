package persist

import (
	"context"
	"sync"

	xerrors "SonicChat/internal/errors"
	"SonicChat/internal/extract"
)

// MemoryStore 是基于内存的实体存储，适用于测试与单机运行。
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string][]extract.Token
	nfts   map[string][]extract.NFT
}

// NewMemoryStore 创建空的内存实体存储。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string][]extract.Token),
		nfts:   make(map[string][]extract.NFT),
	}
}

// SaveToken 按会话保存一条代币实体。
func (s *MemoryStore) SaveToken(_ context.Context, sessionID string, token *extract.Token) error {
	if token == nil {
		return xerrors.New(xerrors.CodeInvalidArgument, "token 不能为空")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[sessionID] = append(s.tokens[sessionID], *token)
	return nil
}

// SaveNFT 按会话保存一条 NFT 实体。
func (s *MemoryStore) SaveNFT(_ context.Context, sessionID string, nft *extract.NFT) error {
	if nft == nil {
		return xerrors.New(xerrors.CodeInvalidArgument, "nft 不能为空")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nfts[sessionID] = append(s.nfts[sessionID], *nft)
	return nil
}

// Tokens 返回会话下保存的代币实体副本。
func (s *MemoryStore) Tokens(sessionID string) []extract.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]extract.Token, len(s.tokens[sessionID]))
	copy(out, s.tokens[sessionID])
	return out
}

// NFTs 返回会话下保存的 NFT 实体副本。
func (s *MemoryStore) NFTs(sessionID string) []extract.NFT {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]extract.NFT, len(s.nfts[sessionID]))
	copy(out, s.nfts[sessionID])
	return out
}

// Close 实现 Store 接口，对内存存储是空操作。
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
